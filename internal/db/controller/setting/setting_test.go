package setting

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bontastic/printerctl/internal/db/models"
)

const testNamespace = "printer"

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// a second pooled connection would see a different in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedSettings inserts test data into the database.
func seedSettings(t *testing.T, db *gorm.DB, settings []models.Setting) {
	t.Helper()

	for _, setting := range settings {
		err := db.Create(&setting).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func resetTable(db *gorm.DB) {
	if db != nil {
		db.Exec("DELETE FROM settings")
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		namespace     string
		key           string
		seedData      []models.Setting
		expectedError error
		expectedValue []byte
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			namespace:     testNamespace,
			key:           "heatDots",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			namespace:     testNamespace,
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "empty namespace",
			dbParam:       db,
			key:           "heatDots",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "not found",
			dbParam:       db,
			namespace:     testNamespace,
			key:           "heatDots",
			expectedError: ErrSettingNotFound,
		},
		{
			name:      "other namespace is invisible",
			dbParam:   db,
			namespace: testNamespace,
			key:       "heatDots",
			seedData: []models.Setting{
				{Namespace: "other", Name: "heatDots", Value: []byte{7}},
			},
			expectedError: ErrSettingNotFound,
		},
		{
			name:      "successful get",
			dbParam:   db,
			namespace: testNamespace,
			key:       "meshName",
			seedData: []models.Setting{
				{Namespace: testNamespace, Name: "meshName", Value: []byte("node-7")},
			},
			expectedValue: []byte("node-7"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resetTable(tc.dbParam)

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			setting, err := Get(tc.dbParam, tc.namespace, tc.key)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, setting)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, setting)
			assert.Equal(t, tc.key, setting.Name)
			assert.Equal(t, tc.expectedValue, setting.Value)
		})
	}
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		namespace     string
		seedData      []models.Setting
		expectedError error
		expectedKeys  []string
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			namespace:     testNamespace,
			expectedError: ErrDBNil,
		},
		{
			name:          "empty namespace",
			dbParam:       db,
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:         "empty table",
			dbParam:      db,
			namespace:    testNamespace,
			expectedKeys: []string{},
		},
		{
			name:      "ordered by key and scoped to namespace",
			dbParam:   db,
			namespace: testNamespace,
			seedData: []models.Setting{
				{Namespace: testNamespace, Name: "lineHeight", Value: []byte{30}},
				{Namespace: testNamespace, Name: "density", Value: []byte{10}},
				{Namespace: "other", Name: "font", Value: []byte{1}},
				{Namespace: testNamespace, Name: "heatDots", Value: []byte{11}},
			},
			expectedKeys: []string{"density", "heatDots", "lineHeight"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resetTable(tc.dbParam)

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			settings, err := GetAll(tc.dbParam, tc.namespace)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, settings)

				return
			}

			require.NoError(t, err)

			keys := make([]string, 0, len(settings))
			for _, s := range settings {
				keys = append(keys, s.Name)
			}

			assert.Equal(t, tc.expectedKeys, keys)
		})
	}
}

func TestSet(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		namespace     string
		key           string
		value         []byte
		seedData      []models.Setting
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			namespace:     testNamespace,
			key:           "heatDots",
			value:         []byte{1},
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			namespace:     testNamespace,
			value:         []byte{1},
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:      "create",
			dbParam:   db,
			namespace: testNamespace,
			key:       "heatDots",
			value:     []byte{9},
		},
		{
			name:      "update",
			dbParam:   db,
			namespace: testNamespace,
			key:       "meshPin",
			value:     []byte("4321"),
			seedData: []models.Setting{
				{Namespace: testNamespace, Name: "meshPin", Value: []byte("123456")},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resetTable(tc.dbParam)

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			setting, err := Set(tc.dbParam, tc.namespace, tc.key, tc.value)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, setting)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, setting)
			assert.NotZero(t, setting.ID)
			assert.Equal(t, tc.value, setting.Value)

			var count int64
			require.NoError(t, tc.dbParam.Model(&models.Setting{}).
				Where(keyQueryPattern, tc.namespace, tc.key).Count(&count).Error)
			assert.Equal(t, int64(1), count, "upsert must not duplicate rows")

			stored, err := Get(tc.dbParam, tc.namespace, tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.value, stored.Value)
		})
	}
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		key           string
		seedData      []models.Setting
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			key:           "font",
			expectedError: ErrDBNil,
		},
		{
			name:          "not found",
			dbParam:       db,
			key:           "font",
			expectedError: ErrSettingNotFound,
		},
		{
			name:    "successful delete",
			dbParam: db,
			key:     "font",
			seedData: []models.Setting{
				{Namespace: testNamespace, Name: "font", Value: []byte{1}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resetTable(tc.dbParam)

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			err := Delete(tc.dbParam, testNamespace, tc.key)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)

				return
			}

			require.NoError(t, err)

			_, err = Get(tc.dbParam, testNamespace, tc.key)
			require.ErrorIs(t, err, ErrSettingNotFound)
		})
	}
}

func TestClear(t *testing.T) {
	db := setupTestDB(t)

	seedSettings(t, db, []models.Setting{
		{Namespace: testNamespace, Name: "font", Value: []byte{1}},
		{Namespace: testNamespace, Name: "size", Value: []byte{2}},
		{Namespace: "other", Name: "size", Value: []byte{0}},
	})

	n, err := Clear(db, testNamespace)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := GetAll(db, "other")
	require.NoError(t, err)
	assert.Len(t, left, 1)

	_, err = Clear(nil, testNamespace)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Clear(db, "")
	require.ErrorIs(t, err, ErrSettingKeyEmpty)
}

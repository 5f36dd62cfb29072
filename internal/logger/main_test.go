package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bontastic/printerctl/internal/logger"
)

func TestInitErrors(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     logger.Log
		wantErr error
	}{
		{
			name:    "missing service name",
			cfg:     logger.Log{LogLevel: "info", AppName: "test"},
			wantErr: logger.ErrServiceNameIsEmpty,
		},
		{
			name:    "missing app name",
			cfg:     logger.Log{LogLevel: "info", ServiceName: "test"},
			wantErr: logger.ErrAppNameIsEmpty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, logger.Init(tc.cfg), tc.wantErr)
		})
	}

	require.Error(t, logger.Init(logger.Log{LogLevel: "loud", AppName: "test", ServiceName: "test"}))
}

func TestLogger(t *testing.T) {
	testCases := []struct {
		name             string
		cfg              logger.Log
		shouldHaveOutPut bool
		outPutIsJSON     bool
	}{
		{
			name:             "no logger enabled",
			cfg:              logger.Log{ServiceName: "test", AppName: "test"},
			shouldHaveOutPut: false,
		},
		{
			name: "console writer",
			cfg: logger.Log{
				LogLevel: "info", ServiceName: "test", AppName: "test",
				Console: logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			shouldHaveOutPut: true,
		},
		{
			name: "console json",
			cfg: logger.Log{
				LogLevel: "info", ServiceName: "test", AppName: "test",
				Console: logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
		{
			name: "console json trace with caller and stack",
			cfg: logger.Log{
				LogLevel: "trace", ServiceName: "test", AppName: "test", ReportCaller: true,
				Console: logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureOutput(t, tc.cfg)

			if !tc.shouldHaveOutPut {
				assert.Empty(t, out)

				return
			}

			require.NotEmpty(t, out)

			if !tc.outPutIsJSON {
				return
			}

			for _, line := range strings.Split(out, "\n") {
				if line == "" {
					continue
				}

				var entry map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
				assert.Equal(t, "test", entry["app"])
			}
		})
	}
}

func TestRollingFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	err := logger.Init(logger.Log{
		LogLevel: "debug", ServiceName: "test", AppName: "test",
		File: logger.LogFile{
			Enabled: true,
			Path:    dir,
			Info:    logger.Rotation{File: "info.log", MaxSize: 1},
			Error:   logger.Rotation{File: "error.log", MaxSize: 1},
			Warn:    logger.Rotation{File: "warn.log", MaxSize: 1},
			Trace:   logger.Rotation{File: "trace.log", MaxSize: 1},
		},
	})
	require.NoError(t, err)

	log.Info().Msg("to info")
	log.Error().Msg("to error")

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "to info")
	assert.NotContains(t, string(info), "to error")

	errLog, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errLog), "to error")
}

func TestLevelWriter(t *testing.T) {
	var info, warn, errs, trace bytes.Buffer

	lw := &logger.LevelWriter{InfoWriter: &info, WarnWriter: &warn, ErrorWriter: &errs, TraceWriter: &trace}

	testCases := []struct {
		level zerolog.Level
		want  *bytes.Buffer
	}{
		{zerolog.DebugLevel, &info},
		{zerolog.InfoLevel, &info},
		{zerolog.WarnLevel, &warn},
		{zerolog.ErrorLevel, &errs},
		{zerolog.FatalLevel, &errs},
		{zerolog.TraceLevel, &trace},
	}

	for _, tc := range testCases {
		t.Run(tc.level.String(), func(t *testing.T) {
			tc.want.Reset()

			n, err := lw.WriteLevel(tc.level, []byte("x"))
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			assert.Equal(t, "x", tc.want.String())
		})
	}

	n, err := lw.WriteLevel(zerolog.Disabled, []byte("x"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func captureOutput(t *testing.T, cfg logger.Log) string {
	t.Helper()

	stdout, stderr := os.Stdout, os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout, os.Stderr = w, w

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	if err := logger.Init(cfg); err != nil {
		t.Error(err)
	}

	log.Info().Msg("this info message should be seen...")
	log.Error().Err(errors.New("a test error")).Msg("this err message should be seen...") //nolint:err113

	_ = w.Close()
	os.Stdout, os.Stderr = stdout, stderr

	return <-outC
}

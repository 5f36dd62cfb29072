// Package field serves the printer fields over http.
package field

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/bontastic/printerctl/internal/config"
	"github.com/bontastic/printerctl/internal/field"
	accesslog "github.com/bontastic/printerctl/internal/logger/adapter/fiber"
	"github.com/bontastic/printerctl/internal/web/handler"
)

const (
	// Path is the route group of the field handlers, below handler.RootPath.
	Path = "/fields"

	paramName = "name"
)

// View is one field in the list response.
type View struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Key      string `json:"key,omitempty"`
	Kind     string `json:"kind"`
	Min      *uint8 `json:"min,omitempty"`
	Max      *uint8 `json:"max,omitempty"`
	MaxLen   int    `json:"maxLen,omitempty"`
	Value    string `json:"value"`
	Readable bool   `json:"readable"`
}

// Service is the field handler service.
type Service struct {
	cfg       *config.Config
	engine    handler.Engine
	validator *validator.Validate
}

// Handler is the field handler.
var Handler = Service{}

// Init registers the field routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, engine handler.Engine) {
	if app == nil || cfg == nil || engine == nil {
		log.Fatal().Msg(handler.ErrNilAppFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.engine = engine
	s.validator = validator.New()

	group := app.Group(handler.RootPath + Path)
	group.Get("/", s.List)
	group.Get("/:"+paramName, s.Get)
	group.Put("/:"+paramName, s.Write)
	group.Post("/:"+paramName, s.Write)
}

// resolve maps the route parameter to a field of the active variant.
func (s *Service) resolve(c *fiber.Ctx) (field.Field, error) {
	name := c.Params(paramName)

	if err := s.validator.Var(name, "required,max=32,printascii"); err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid field name")
	}

	f, ok := field.ByName(name)
	if !ok || !s.engine.Variant().Contains(f) {
		return 0, fiber.NewError(fiber.StatusNotFound, "unknown field "+name)
	}

	c.Locals(accesslog.LocalField, f.String())

	return f, nil
}

// List returns every field of the active variant with its readable value.
func (s *Service) List(c *fiber.Ctx) error {
	fields := s.engine.Variant().Fields()
	out := make([]View, 0, len(fields))

	for _, d := range fields {
		v := View{
			Index:    int(d.Field),
			Label:    d.Label,
			Key:      d.Key,
			Kind:     kindName(d.Kind),
			MaxLen:   d.MaxLen(),
			Value:    string(s.engine.HandleRead(d.Field)),
			Readable: d.HasSlot(),
		}

		if d.Kind == field.Numeric {
			lo, hi := d.Range.Min, d.Range.Max
			v.Min, v.Max = &lo, &hi
		}

		out = append(out, v)
	}

	return c.JSON(out)
}

// Get returns the raw readable value of one field.
func (s *Service) Get(c *fiber.Ctx) error {
	f, err := s.resolve(c)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return c.Send(s.engine.HandleRead(f))
}

// Write hands the raw request body to the engine.
func (s *Service) Write(c *fiber.Ctx) error {
	f, err := s.resolve(c)
	if err != nil {
		return err
	}

	s.engine.HandleWrite(f, c.Body())

	return c.SendStatus(fiber.StatusNoContent)
}

func kindName(k field.Kind) string {
	switch k {
	case field.Numeric:
		return "numeric"
	case field.Text:
		return "text"
	default:
		return "trigger"
	}
}

// Package mqtt bridges the printer fields to an MQTT broker.
//
// Writes arrive on <prefix>/<field>/set, where <field> is a label, key or index.
// Every change notification is published retained on <prefix>/<LABEL>.
package mqtt

import (
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/bontastic/printerctl/internal/config"
	"github.com/bontastic/printerctl/internal/field"
)

const (
	setSuffix      = "/set"
	publishTimeout = 5 * time.Second
	quiesceMillis  = 250
)

// ErrConnectTimeout is returned when the broker does not answer in time.
var ErrConnectTimeout = errors.New("mqtt connect timeout")

// connectTimeout bounds Connect; a var so tests can shorten it.
var connectTimeout = 10 * time.Second

// Handler is the engine side of the bridge.
type Handler interface {
	HandleWrite(f field.Field, payload []byte)
}

// broker is the part of paho.Client the bridge uses.
type broker interface {
	Connect() paho.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
	Disconnect(quiesce uint)
}

// Bridge relays writes from the broker to the engine and notifications back.
type Bridge struct {
	client  broker
	handler Handler
	variant field.Variant
	prefix  string
	qos     byte
	url     string
}

// ClientID returns the configured id or a fresh printerctl-<uuid>.
func ClientID(cfg config.MQTT) string {
	if cfg.ClientID != "" {
		return cfg.ClientID
	}

	return "printerctl-" + uuid.NewString()
}

// New builds the bridge without connecting. Register it as an engine listener
// before calling Connect, so no accepted write misses its notification.
func New(cfg config.MQTT, h Handler, variant field.Variant) *Bridge {
	b := &Bridge{
		handler: h,
		variant: variant,
		prefix:  strings.TrimSuffix(cfg.TopicPrefix, "/"),
		qos:     cfg.QoS,
		url:     cfg.Broker,
	}

	b.client = paho.NewClient(b.clientOptions(cfg))

	return b
}

// clientOptions turns Order off: message handlers take the engine lock and publish,
// so each one runs on its own goroutine.
func (b *Bridge) clientOptions(cfg config.MQTT) *paho.ClientOptions {
	return paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(ClientID(cfg)).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetOrderMatters(false).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second). //nolint:mnd
		SetKeepAlive(60 * time.Second).           //nolint:mnd
		SetOnConnectHandler(func(c paho.Client) {
			if err := b.subscribe(c); err != nil {
				log.Error().Err(err).Msg("mqtt subscribe failed")
			}
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Warn().Err(err).Msg("mqtt connection lost")
		})
}

// Connect dials the broker; the write topics are subscribed on every (re)connect.
// On timeout the background retry is stopped before returning.
func (b *Bridge) Connect() error {
	token := b.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		b.client.Disconnect(quiesceMillis)

		return ErrConnectTimeout
	}

	if err := token.Error(); err != nil {
		return errors.Wrap(err, "mqtt connect")
	}

	log.Info().Str("broker", b.url).Str("prefix", b.prefix).Msg("mqtt connected")

	return nil
}

func (b *Bridge) subscribe(c broker) error {
	token := c.Subscribe(b.prefix+"/+"+setSuffix, b.qos, b.onMessage)
	token.Wait()

	return token.Error() //nolint:wrapcheck
}

func (b *Bridge) onMessage(_ paho.Client, msg paho.Message) {
	f, ok := b.ParseTopic(msg.Topic())
	if !ok {
		log.Debug().Str("topic", msg.Topic()).Msg("mqtt write to unknown field")

		return
	}

	b.handler.HandleWrite(f, msg.Payload())
}

// ParseTopic resolves <prefix>/<field>/set to a field of the active variant.
func (b *Bridge) ParseTopic(topic string) (field.Field, bool) {
	name, ok := strings.CutPrefix(topic, b.prefix+"/")
	if !ok {
		return 0, false
	}

	name, ok = strings.CutSuffix(name, setSuffix)
	if !ok || strings.Contains(name, "/") {
		return 0, false
	}

	f, ok := field.ByName(name)
	if !ok || !b.variant.Contains(f) {
		return 0, false
	}

	return f, true
}

// StateTopic returns the topic notifications of f are published on.
func (b *Bridge) StateTopic(f field.Field) string {
	return b.prefix + "/" + f.String()
}

// Refresh implements engine.Listener. Only notifications are published.
// Delivery is awaited off the caller's goroutine.
func (b *Bridge) Refresh(f field.Field, value []byte, notify bool) {
	if !notify || b.client == nil {
		return
	}

	token := b.client.Publish(b.StateTopic(f), b.qos, true, append([]byte(nil), value...))

	go awaitPublish(f, token)
}

func awaitPublish(f field.Field, token paho.Token) {
	if !token.WaitTimeout(publishTimeout) {
		log.Warn().Str("field", f.String()).Msg("mqtt publish timeout")

		return
	}

	if err := token.Error(); err != nil {
		log.Error().Err(err).Str("field", f.String()).Msg("mqtt publish failed")
	}
}

// Close disconnects from the broker.
func (b *Bridge) Close() {
	if b.client != nil {
		b.client.Disconnect(quiesceMillis)
	}
}

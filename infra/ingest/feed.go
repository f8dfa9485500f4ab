package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/bananai/brokerage/core/logger"
	"github.com/bananai/brokerage/core/model"
)

// Config defines the connection parameters for the inspection sample feed.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "inspection/samples"
	}
	if c.ClientID == "" {
		c.ClientID = fmt.Sprintf("broker-ingest-%s", uuid.NewString()[:8])
	}
}

// SampleSink receives decoded samples. The app wires it to the inventory
// and batch store so every accepted sample refreshes and persists its
// batch.
type SampleSink interface {
	IngestSample(ctx context.Context, batchID string, s model.Sample) error
}

// detectionPayload mirrors the JSON published by the vision pipeline.
type detectionPayload struct {
	BatchID    string      `json:"batch_id"`
	Timestamp  float64     `json:"timestamp"`
	Detections []detection `json:"detections"`
}

type detection struct {
	LengthCM   float64   `json:"length_cm"`
	Ripeness   string    `json:"ripeness"`
	Confidence float64   `json:"confidence"`
	MeanHSV    []float64 `json:"mean_hsv"`
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Feed subscribes to the inspection topic and forwards valid samples to
// the sink. Malformed detections are skipped with a warning; the feed
// never stops over one bad payload.
type Feed struct {
	cli   pahoClient
	topic string
	qos   byte
	sink  SampleSink
	log   logger.Logger
}

// NewFeed connects to the MQTT broker and subscribes to the sample topic.
func NewFeed(cfg Config, sink SampleSink, log logger.Logger) (*Feed, error) {
	cfg.SetDefaults()
	f := &Feed{topic: cfg.Topic, qos: cfg.QoS, sink: sink, log: log}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	opts.OnConnect = func(c paho.Client) {
		log.Infof("sample feed connected")
		if token := c.Subscribe(f.topic, f.qos, f.onMessage); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Warnf("sample feed connection lost: %v", err)
	}

	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	f.cli = cli
	return f, nil
}

func (f *Feed) onMessage(_ paho.Client, msg paho.Message) {
	accepted, err := f.handlePayload(context.Background(), msg.Payload())
	if err != nil {
		f.log.Warnf("dropping sample payload: %v", err)
		return
	}
	f.log.Debugw("samples ingested", map[string]any{"count": accepted, "topic": msg.Topic()})
}

// handlePayload decodes a detection payload and forwards each valid
// detection as a sample. Returns the number of samples accepted.
func (f *Feed) handlePayload(ctx context.Context, data []byte) (int, error) {
	var p detectionPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}
	if p.BatchID == "" {
		return 0, fmt.Errorf("payload missing batch_id")
	}
	accepted := 0
	for _, d := range p.Detections {
		if d.LengthCM <= 0 || d.Confidence <= 0 || d.Confidence > 1 {
			f.log.Warnf("skipping malformed detection for %s: length=%.2f confidence=%.2f", p.BatchID, d.LengthCM, d.Confidence)
			continue
		}
		s := model.Sample{
			LengthCM:   d.LengthCM,
			Ripeness:   d.Ripeness,
			Confidence: d.Confidence,
		}
		if len(d.MeanHSV) == 3 {
			copy(s.MeanHSV[:], d.MeanHSV)
		}
		if err := f.sink.IngestSample(ctx, p.BatchID, s); err != nil {
			f.log.Warnf("sample rejected for %s: %v", p.BatchID, err)
			continue
		}
		accepted++
	}
	return accepted, nil
}

// Close disconnects from the broker.
func (f *Feed) Close() {
	if f.cli != nil && f.cli.IsConnected() {
		f.cli.Disconnect(250)
	}
}

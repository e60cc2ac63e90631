package main

import (
	"context"
	"fmt"
	"net"

	"github.com/eclipse/paho.golang/packets"
	"github.com/eclipse/paho.golang/paho"
	jsoniter "github.com/json-iterator/go"

	"vehicle-fusion-core/carstate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher pushes each cycle's snapshot to an MQTT broker for off-vehicle
// monitoring. Publishing is best-effort; a broker outage must never stall
// the control loop.
type Publisher struct {
	client *paho.Client
	topic  string
	qos    byte
}

func NewPublisher(ctx context.Context, cfg TelemetryConfig) (*Publisher, error) {
	tcpConn, err := net.Dial("tcp", cfg.Broker)
	if err != nil {
		return nil, fmt.Errorf("connect broker %s: %w", cfg.Broker, err)
	}
	tcpConn = packets.NewThreadSafeConn(tcpConn)

	client := paho.NewClient(paho.ClientConfig{
		Conn: tcpConn,
	})

	cp := &paho.Connect{
		KeepAlive:  30,
		ClientID:   cfg.ClientID,
		CleanStart: true,
		Username:   cfg.Username,
		Password:   []byte(cfg.Password),
	}
	if cfg.Username != "" {
		cp.UsernameFlag = true
	}
	if cfg.Password != "" {
		cp.PasswordFlag = true
	}

	ca, err := client.Connect(ctx, cp)
	if err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	if ca.ReasonCode != 0 {
		return nil, fmt.Errorf("mqtt connect to %s refused: %d", cfg.Broker, ca.ReasonCode)
	}

	return &Publisher{client: client, topic: cfg.Topic, qos: byte(cfg.QoS)}, nil
}

func (p *Publisher) Publish(ctx context.Context, snap carstate.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if _, err := p.client.Publish(ctx, &paho.Publish{
		Topic:   p.topic,
		QoS:     p.qos,
		Payload: payload,
	}); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.client.Disconnect(&paho.Disconnect{ReasonCode: 0})
}

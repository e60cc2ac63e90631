package bus

import (
	"context"
	"fmt"
	"net"

	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

// Receiver reads raw frames from one segment.
type Receiver interface {
	ReadFrame(ctx context.Context) (can.Frame, error)
	Close() error
}

// Transmitter writes raw frames onto one segment.
type Transmitter interface {
	WriteFrame(ctx context.Context, frame can.Frame) error
	Close() error
}

type SocketCANReceiver struct {
	conn net.Conn
	recv *socketcan.Receiver
}

func NewSocketCANReceiver(ctx context.Context, ifname string) (*SocketCANReceiver, error) {
	conn, err := socketcan.DialContext(ctx, "can", ifname)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial %s: %w", ifname, err)
	}
	return &SocketCANReceiver{conn: conn, recv: socketcan.NewReceiver(conn)}, nil
}

func (r *SocketCANReceiver) ReadFrame(ctx context.Context) (can.Frame, error) {
	frameChan := make(chan can.Frame, 1)
	errChan := make(chan error, 1)

	// Receive blocks without a context; run it in a goroutine so the caller
	// can still cancel.
	go func() {
		if r.recv.Receive() {
			frameChan <- r.recv.Frame()
		} else {
			errChan <- fmt.Errorf("receive failed")
		}
	}()

	select {
	case <-ctx.Done():
		return can.Frame{}, ctx.Err()
	case frame := <-frameChan:
		return frame, nil
	case err := <-errChan:
		return can.Frame{}, err
	}
}

func (r *SocketCANReceiver) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

type SocketCANTransmitter struct {
	conn net.Conn
	tx   *socketcan.Transmitter
}

func NewSocketCANTransmitter(ctx context.Context, ifname string) (*SocketCANTransmitter, error) {
	conn, err := socketcan.DialContext(ctx, "can", ifname)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial %s: %w", ifname, err)
	}
	return &SocketCANTransmitter{conn: conn, tx: socketcan.NewTransmitter(conn)}, nil
}

func (t *SocketCANTransmitter) WriteFrame(ctx context.Context, frame can.Frame) error {
	return t.tx.TransmitFrame(ctx, frame)
}

func (t *SocketCANTransmitter) Close() error {
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}

package events

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/nats-io/nats.go"
	"github.com/seventv/tracker/data/model"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Instance broadcasts newly written change-points. Publishing is best effort.
type Instance interface {
	PublishEntries(entries []model.LogEntry)
	Connected() bool
	Close() error
}

type Options struct {
	URL     string
	Subject string
}

type natsInst struct {
	conn    *nats.Conn
	subject string
}

func New(opt Options) (Instance, error) {
	conn, err := nats.Connect(opt.URL,
		nats.Name("tracker"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			zap.S().Warnw("nats, disconnected",
				"error", err,
			)
		}),
	)
	if err != nil {
		return nil, err
	}

	return &natsInst{
		conn:    conn,
		subject: opt.Subject,
	}, nil
}

func (inst *natsInst) PublishEntries(entries []model.LogEntry) {
	for _, e := range entries {
		b, err := EncodeEntry(e)
		if err != nil {
			zap.S().Warnw("nats, failed to encode presence change",
				"account_id", e.AccountID,
				"error", err,
			)

			continue
		}

		subject := fmt.Sprintf("%s.%d", inst.subject, e.AccountID)
		if err := inst.conn.Publish(subject, b); err != nil {
			zap.S().Warnw("nats, failed to publish presence change",
				"subject", subject,
				"error", err,
			)
		}
	}
}

func (inst *natsInst) Connected() bool {
	return inst.conn.IsConnected()
}

func (inst *natsInst) Close() error {
	return inst.conn.Drain()
}

type EntryPayload struct {
	ID         string    `json:"id"`
	AccountID  int64     `json:"account_id"`
	State      string    `json:"state"`
	Platform   string    `json:"platform"`
	LastSeen   int64     `json:"last_seen"`
	InsertedAt time.Time `json:"inserted_at"`
}

func EncodeEntry(e model.LogEntry) ([]byte, error) {
	return json.Marshal(EntryPayload{
		ID:         e.ID,
		AccountID:  e.AccountID,
		State:      e.Presence.Kind().String(),
		Platform:   e.Presence.Platform().String(),
		LastSeen:   e.LastSeen,
		InsertedAt: e.InsertedAt,
	})
}

type noop struct{}

// NewNoop returns a publisher which drops everything, for deployments without NATS.
func NewNoop() Instance {
	return noop{}
}

func (noop) PublishEntries([]model.LogEntry) {}

func (noop) Connected() bool {
	return true
}

func (noop) Close() error {
	return nil
}

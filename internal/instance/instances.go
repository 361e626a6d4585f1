package instance

import (
	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/data/mutate"
	"github.com/seventv/tracker/data/query"
	"github.com/seventv/tracker/internal/externalapis"
	"github.com/seventv/tracker/internal/svc/aggregate"
	"github.com/seventv/tracker/internal/svc/events"
	"github.com/seventv/tracker/internal/svc/ingest"
	"github.com/seventv/tracker/internal/svc/limiter"
	"github.com/seventv/tracker/internal/svc/mongo"
	"github.com/seventv/tracker/internal/svc/prometheus"
)

type Instances struct {
	Mongo      mongo.Instance
	Prometheus prometheus.Instance
	Events     events.Instance
	Limiter    limiter.Instance
	Presence   *externalapis.PresenceClient
	Ingest     ingest.Instance
	Aggregate  aggregate.Instance
	Modelizer  model.Modelizer

	Query  *query.Query
	Mutate *mutate.Mutate
}

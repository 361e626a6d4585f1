package query

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/seventv/tracker/internal/svc/mongo"
)

type Query struct {
	mongo mongo.Instance
	c     *cache.Cache
}

func New(mongoInst mongo.Instance) *Query {
	return &Query{
		mongo: mongoInst,
		c:     cache.New(time.Minute*1, time.Minute*5),
	}
}

package rest

import (
	"strconv"
	"time"

	"github.com/seventv/common/errors"
)

type Param struct {
	v interface{}
}

func (c *Ctx) UserValue(key string) *Param {
	return &Param{c.RequestCtx.UserValue(key)}
}

// String returns a string value of the param
func (p *Param) String() (string, bool) {
	if p.v == nil {
		return "", false
	}

	s, ok := p.v.(string)

	return s, ok
}

// Int64 parses the param into an int64
func (p *Param) Int64() (int64, error) {
	s, ok := p.String()
	if !ok {
		return 0, errors.ErrEmptyField()
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.ErrBadInt().SetDetail(err.Error())
	}

	return i, nil
}

// QueryInt reads an integer query argument, falling back to def when it is absent.
func (c *Ctx) QueryInt(key string, def int) (int, APIError) {
	b := c.QueryArgs().Peek(key)
	if len(b) == 0 {
		return def, nil
	}

	i, err := strconv.Atoi(string(b))
	if err != nil {
		return 0, errors.ErrBadInt().SetFields(errors.Fields{"query": key})
	}

	return i, nil
}

// QueryTime reads a unix seconds query argument, falling back to def when it is absent.
func (c *Ctx) QueryTime(key string, def time.Time) (time.Time, APIError) {
	b := c.QueryArgs().Peek(key)
	if len(b) == 0 {
		return def, nil
	}

	i, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return time.Time{}, errors.ErrBadInt().SetFields(errors.Fields{"query": key})
	}

	return time.Unix(i, 0).UTC(), nil
}

// Window reads the from and to query arguments. When absent, the window covers the day before now.
func (c *Ctx) Window(now time.Time) (from time.Time, to time.Time, err APIError) {
	if to, err = c.QueryTime("to", now); err != nil {
		return from, to, err
	}

	if from, err = c.QueryTime("from", to.Add(-24*time.Hour)); err != nil {
		return from, to, err
	}

	return from, to, nil
}

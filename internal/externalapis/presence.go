package externalapis

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/seventv/common/errors"
	"github.com/seventv/tracker/data/model"
	"github.com/seventv/tracker/internal/svc/limiter"
	"go.uber.org/zap"
)

type PresenceOptions struct {
	BaseURL     string
	AccessToken string
	Version     string
	// BatchSize caps the number of accounts per upstream request
	BatchSize int
	Timeout   time.Duration
	Limiter   limiter.Instance
	Client    *http.Client
}

// PresenceClient fetches presence snapshots from a users.get style endpoint.
type PresenceClient struct {
	opt    PresenceOptions
	client *http.Client
}

func NewPresenceClient(opt PresenceOptions) *PresenceClient {
	client := opt.Client
	if client == nil {
		client = &http.Client{Timeout: opt.Timeout}
	}

	if opt.BatchSize <= 0 {
		opt.BatchSize = 1000
	}

	if opt.Limiter == nil {
		opt.Limiter = limiter.New(limiter.Options{})
	}

	return &PresenceClient{
		opt:    opt,
		client: client,
	}
}

type usersGetParams struct {
	UserIDs     string `url:"user_ids"`
	Fields      string `url:"fields"`
	AccessToken string `url:"access_token,omitempty"`
	Version     string `url:"v,omitempty"`
}

type usersGetResponse struct {
	Response []presenceUser `json:"response"`
	Error    *apiError      `json:"error"`
}

type apiError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

type presenceUser struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Deactivated string `json:"deactivated"`
	Online      int    `json:"online"`
	LastSeen    *struct {
		Time     int64 `json:"time"`
		Platform uint8 `json:"platform"`
	} `json:"last_seen"`
}

func (u presenceUser) snapshot() model.Snapshot {
	s := model.Snapshot{
		AccountID: u.ID,
		Online:    u.Online == 1,
	}

	if u.LastSeen == nil || u.Deactivated != "" {
		return s
	}

	ts := u.LastSeen.Time
	s.LastSeen = &ts

	if p := model.Platform(u.LastSeen.Platform); p.Valid() {
		s.Platform = p
	}

	return s
}

// FetchSnapshots returns the current presence of every requested account.
// A failure of any chunk fails the whole call.
func (c *PresenceClient) FetchSnapshots(ctx context.Context, ids []int64) ([]model.Snapshot, error) {
	result := make([]model.Snapshot, 0, len(ids))

	for start := 0; start < len(ids); start += c.opt.BatchSize {
		end := start + c.opt.BatchSize
		if end > len(ids) {
			end = len(ids)
		}

		snapshots, err := c.fetchChunk(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}

		result = append(result, snapshots...)
	}

	return result, nil
}

func (c *PresenceClient) fetchChunk(ctx context.Context, ids []int64) ([]model.Snapshot, error) {
	if err := c.opt.Limiter.Await(ctx); err != nil {
		return nil, err
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = strconv.FormatInt(id, 10)
	}

	params, err := query.Values(&usersGetParams{
		UserIDs:     strings.Join(strIDs, ","),
		Fields:      "online,last_seen",
		AccessToken: c.opt.AccessToken,
		Version:     c.opt.Version,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/users.get?%s", strings.TrimRight(c.opt.BaseURL, "/"), params.Encode()), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, model.ErrUpstreamUnavailable().SetDetail(err.Error())
	}
	defer resp.Body.Close()

	var res usersGetResponse
	if err = ReadRequestResponse(resp, &res); err != nil {
		return nil, model.ErrUpstreamUnavailable().SetDetail(err.Error())
	}

	if res.Error != nil {
		zap.S().Warnw("presence api returned an error",
			"code", res.Error.Code,
			"message", res.Error.Message,
			"accounts", len(ids),
		)

		return nil, model.ErrUpstreamUnavailable().SetFields(errors.Fields{
			"upstream_code":    res.Error.Code,
			"upstream_message": res.Error.Message,
		})
	}

	snapshots := make([]model.Snapshot, len(res.Response))
	for i, u := range res.Response {
		snapshots[i] = u.snapshot()
	}

	return snapshots, nil
}

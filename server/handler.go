package server

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/timeclib/timec"
)

var handlers = []struct {
	Path       string
	HTTPMethod string
	Handler    http.Handler
}{
	{Path: "/v1/format", HTTPMethod: "POST", Handler: &formatHandler{}},
	{Path: "/v1/parse", HTTPMethod: "POST", Handler: &parseHandler{}},
	{Path: "/v1/diff", HTTPMethod: "POST", Handler: &diffHandler{}},
	{Path: "/v1/locales", HTTPMethod: "GET", Handler: &localesHandler{}},
}

func encodeResponse(w http.ResponseWriter, response interface{}) {
	if err := json.NewEncoder(w).Encode(response); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintln(w, err.Error())
	}
}

// options assembles the per-request engine options from the request's locale
// against the store the server was built with.
func (s *Server) options(localeID string) []timec.Option {
	opts := []timec.Option{timec.WithStore(s.store)}
	if localeID != "" {
		opts = append(opts, timec.WithLocale(localeID))
	}
	return opts
}

type formatRequest struct {
	Time     string `json:"time"`
	Epoch    *int64 `json:"epoch"`
	Timezone string `json:"timezone"`
	Format   string `json:"format"`
	Locale   string `json:"locale"`
}

type formatResponse struct {
	Result string `json:"result"`
}

type formatHandler struct{}

func (h *formatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	server := serverFromContext(ctx)
	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(ctx, w, errInvalid(fmt.Sprintf("failed to decode request body: %s", err)))
		return
	}
	if req.Format == "" {
		errorResponse(ctx, w, errInvalid("the required field format was not specified"))
		return
	}
	var (
		t   timec.Time
		err error
	)
	switch {
	case req.Epoch != nil:
		t = timec.FromEpoch(*req.Epoch, timec.UTC)
	case req.Time != "":
		t, err = timec.Parse(req.Time)
		if err != nil {
			errorResponse(ctx, w, toServerError(err))
			return
		}
	default:
		t = timec.Now()
	}
	if req.Timezone != "" {
		zone := timec.ZoneByName(req.Timezone)
		if _, err := zone.OffsetMinutes(t.Epoch()); err != nil {
			errorResponse(ctx, w, toServerError(err))
			return
		}
		t = t.WithZone(zone)
	}
	result, err := timec.Strftime(t, req.Format, server.options(req.Locale)...)
	if err != nil {
		errorResponse(ctx, w, toServerError(err))
		return
	}
	encodeResponse(w, &formatResponse{Result: result})
}

type parseRequest struct {
	Input  string `json:"input"`
	Format string `json:"format"`
	Locale string `json:"locale"`
	Strict *bool  `json:"strict"`
}

type parseResponse struct {
	Time  string `json:"time"`
	Epoch int64  `json:"epoch"`
	Zone  string `json:"zone"`
}

type parseHandler struct{}

func (h *parseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	server := serverFromContext(ctx)
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(ctx, w, errInvalid(fmt.Sprintf("failed to decode request body: %s", err)))
		return
	}
	if req.Format == "" {
		errorResponse(ctx, w, errInvalid("the required field format was not specified"))
		return
	}
	opts := server.options(req.Locale)
	if req.Strict != nil && !*req.Strict {
		opts = append(opts, timec.Lenient())
	}
	t, err := timec.Strptime(req.Input, req.Format, opts...)
	if err != nil {
		errorResponse(ctx, w, toServerError(err))
		return
	}
	encodeResponse(w, &parseResponse{
		Time:  t.String(),
		Epoch: t.Epoch(),
		Zone:  t.Zone().Name(),
	})
}

type diffRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type diffResponse struct {
	Human    string `json:"human"`
	Relative string `json:"relative"`
	Sign     int    `json:"sign"`
	Years    int    `json:"years"`
	Months   int    `json:"months"`
	Weeks    int    `json:"weeks"`
	Days     int    `json:"days"`
	Hours    int    `json:"hours"`
	Minutes  int    `json:"minutes"`
	Seconds  int    `json:"seconds"`
}

type diffHandler struct{}

func (h *diffHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req diffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(ctx, w, errInvalid(fmt.Sprintf("failed to decode request body: %s", err)))
		return
	}
	from, err := timec.Parse(req.From)
	if err != nil {
		errorResponse(ctx, w, toServerError(err))
		return
	}
	to, err := timec.Parse(req.To)
	if err != nil {
		errorResponse(ctx, w, toServerError(err))
		return
	}
	diff := timec.Between(from, to)
	encodeResponse(w, &diffResponse{
		Human:    diff.String(),
		Relative: diff.Relative(),
		Sign:     diff.Sign,
		Years:    diff.Years,
		Months:   diff.Months,
		Weeks:    diff.Weeks,
		Days:     diff.Days,
		Hours:    diff.Hours,
		Minutes:  diff.Minutes,
		Seconds:  diff.Seconds,
	})
}

type localesResponse struct {
	Locales []string `json:"locales"`
}

type localesHandler struct{}

func (h *localesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	server := serverFromContext(ctx)
	encodeResponse(w, &localesResponse{Locales: server.store.IDs()})
}

type defaultHandler struct{}

func (h *defaultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	errorResponse(ctx, w, errNotFound(fmt.Sprintf("no handler for %s %s", r.Method, r.URL.Path)))
}

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bryanwahyu/loan-insights/internal/domain/loans"
)

const defaultPageSize = 1000

// RESTSource reads a table from a PostgREST endpoint such as Supabase.
type RESTSource struct {
	BaseURL  string
	APIKey   string
	PageSize int
	// Order is the column pages are sorted by so offsets stay stable.
	// Empty leaves the row order to the server.
	Order  string
	Client *http.Client
}

func NewRESTSource(baseURL, apiKey string, timeout time.Duration) *RESTSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RESTSource{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		APIKey:   apiKey,
		PageSize: defaultPageSize,
		Client:   &http.Client{Timeout: timeout},
	}
}

// FetchRecords pages through the table until a short page comes back.
func (s *RESTSource) FetchRecords(ctx context.Context, dataset string) ([]loans.Record, error) {
	if s.BaseURL == "" || s.APIKey == "" {
		return nil, fmt.Errorf("rest source: url or api key is missing")
	}
	if !ValidIdentifier(dataset) {
		return nil, fmt.Errorf("invalid dataset name %q", dataset)
	}
	if s.Order != "" && !ValidIdentifier(s.Order) {
		return nil, fmt.Errorf("invalid order column %q", s.Order)
	}
	size := s.PageSize
	if size <= 0 {
		size = defaultPageSize
	}

	var out []loans.Record
	for offset := 0; ; offset += size {
		page, err := s.fetchPage(ctx, dataset, offset, size)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < size {
			return out, nil
		}
	}
}

func (s *RESTSource) fetchPage(ctx context.Context, dataset string, offset, limit int) ([]loans.Record, error) {
	q := url.Values{}
	q.Set("select", "*")
	if s.Order != "" {
		q.Set("order", s.Order+".asc")
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", s.BaseURL, dataset, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.APIKey)
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rest source request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rest source: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("rest source decode: %w", err)
	}
	out := make([]loans.Record, len(rows))
	for i, r := range rows {
		out[i] = loans.Record(r)
	}
	return out, nil
}

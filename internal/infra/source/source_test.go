package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/loan-insights/internal/config"
	"github.com/bryanwahyu/loan-insights/internal/domain/loans"
	"github.com/bryanwahyu/loan-insights/internal/infra/db/sqlite"
)

func TestValidIdentifier(t *testing.T) {
	assert.True(t, ValidIdentifier("loans"))
	assert.True(t, ValidIdentifier("loan_data_2024"))
	assert.False(t, ValidIdentifier(""))
	assert.False(t, ValidIdentifier("1loans"))
	assert.False(t, ValidIdentifier("loans; DROP TABLE x"))
	assert.False(t, ValidIdentifier(`loans"`))

	long := strings.Repeat("a", 64)
	assert.False(t, ValidIdentifier(long))
	assert.Equal(t, config.ValidateIdentifier(long) == nil, ValidIdentifier(long))
	assert.True(t, ValidIdentifier(long[:63]))
}

func TestSQLSourceFetchRecords(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Connect(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, `CREATE TABLE loans (loan_amnt REAL, grade TEXT, term TEXT, is_bad INTEGER)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO loans VALUES (5000, 'A', '36 months', 1), (7500.5, ' B ', NULL, 0)`)
	require.NoError(t, err)

	records, err := NewSQLSource(db, "sqlite").FetchRecords(ctx, "loans")
	require.NoError(t, err)
	require.Len(t, records, 2)

	amount, ok := records[1].Number(loans.FieldLoanAmount)
	require.True(t, ok)
	assert.Equal(t, 7500.5, amount)
	grade, _ := records[1].Text(loans.FieldGrade)
	assert.Equal(t, "B", grade)
	assert.True(t, records[1].Has(loans.FieldTerm))
	assert.Nil(t, records[1].Value(loans.FieldTerm))
	assert.True(t, loans.IsDefault(records[0]))
}

func TestSQLSourceRejectsBadIdentifier(t *testing.T) {
	db, err := sqlite.Connect(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = NewSQLSource(db, "sqlite").FetchRecords(context.Background(), "loans--")
	assert.ErrorContains(t, err, "invalid dataset name")
}

func TestSQLSourceMissingTable(t *testing.T) {
	db, err := sqlite.Connect(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = NewSQLSource(db, "sqlite").FetchRecords(context.Background(), "loans")
	assert.Error(t, err)
}

func TestRESTSourcePaginates(t *testing.T) {
	rows := []map[string]any{
		{"loan_amnt": 1000, "grade": "A", "is_bad": 1},
		{"loan_amnt": 2000, "grade": "B", "is_bad": 0},
		{"loan_amnt": 3000, "grade": "A", "is_bad": 0},
	}
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/rest/v1/loans", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "id.asc", r.URL.Query().Get("order"))

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		end := offset + limit
		if end > len(rows) {
			end = len(rows)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows[offset:end])
	}))
	defer server.Close()

	src := NewRESTSource(server.URL+"/", "secret", 0)
	src.PageSize = 2
	src.Order = "id"

	records, err := src.FetchRecords(context.Background(), "loans")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 2, calls)

	amount, ok := records[2].Number(loans.FieldLoanAmount)
	require.True(t, ok)
	assert.Equal(t, 3000.0, amount)
	assert.True(t, loans.IsDefault(records[0]))
}

func TestRESTSourceOrder(t *testing.T) {
	var orders []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, set := r.URL.Query()["order"]
		if set {
			orders = append(orders, r.URL.Query().Get("order"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	src := NewRESTSource(server.URL, "secret", 0)
	_, err := src.FetchRecords(context.Background(), "loans")
	require.NoError(t, err)
	assert.Empty(t, orders)

	src.Order = "created_at"
	_, err = src.FetchRecords(context.Background(), "loans")
	require.NoError(t, err)
	assert.Equal(t, []string{"created_at.asc"}, orders)

	src.Order = "id;drop"
	_, err = src.FetchRecords(context.Background(), "loans")
	assert.ErrorContains(t, err, "invalid order column")
}

func TestRESTSourceErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"relation does not exist"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewRESTSource(server.URL, "secret", 0).FetchRecords(context.Background(), "loans")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestRESTSourceMissingCredentials(t *testing.T) {
	_, err := NewRESTSource("", "", 0).FetchRecords(context.Background(), "loans")
	assert.ErrorContains(t, err, "missing")
}

func TestCSVSource(t *testing.T) {
	dir := t.TempDir()
	content := "loan_amnt,grade,emp_length,is_bad\n5000,A,10+ years,1\n,B,,0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "loans.csv"), []byte(content), 0o644))

	records, err := NewCSVSource(dir).FetchRecords(context.Background(), "loans")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "5000", records[0].Value(loans.FieldLoanAmount))
	assert.True(t, records[1].Has(loans.FieldLoanAmount))
	assert.Nil(t, records[1].Value(loans.FieldLoanAmount))
	assert.True(t, loans.IsDefault(records[0]))
}

func TestReadCSVEmpty(t *testing.T) {
	records, err := ReadCSV(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCSVSourceMissingFile(t *testing.T) {
	_, err := NewCSVSource(t.TempDir()).FetchRecords(context.Background(), "loans")
	assert.True(t, os.IsNotExist(err))
}

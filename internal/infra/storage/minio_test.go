package storage

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	u, _ := url.Parse("https://minio.example.com:9000")
	assert.Equal(t, "https://minio.example.com:9000/reports/charts/b1/grade_defaults.png",
		objectURL(u, "reports", "charts/b1/grade_defaults.png"))
	assert.Equal(t, "http:///reports/x.png", objectURL(nil, "reports", "x.png"))
}

func TestObjectKey(t *testing.T) {
	s := &Store{prefix: "charts"}
	assert.Equal(t, "charts/b1/risk_factors.png", s.objectKey("/b1/risk_factors.png"))

	s.WithPrefix("/")
	assert.Equal(t, "b1/risk_factors.png", s.objectKey("b1/risk_factors.png"))
}

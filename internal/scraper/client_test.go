package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/gradeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mc102 = domain.Subject{Code: "MC102", Institute: "IC"}
	t2024 = domain.Term{Year: 2024, Half: 1}
)

func TestClient_PageURL(t *testing.T) {
	c := New(Config{BaseURL: "https://example.test/horarios/"}, nil)
	assert.Equal(t, "https://example.test/horarios/2024/1/S/G/IC/MC102", c.PageURL(mc102, t2024))
	assert.Equal(t, "https://example.test/horarios/2024/2/S/G/IFGW/F%20128",
		c.PageURL(domain.Subject{Code: "F 128", Institute: "IFGW"}, t2024.Next()))
}

func TestClient_Fetch_ParsesOfferedSubject(t *testing.T) {
	body, err := os.ReadFile("testdata/mc102.html")
	require.NoError(t, err)

	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Delay: 0}, nil)
	off, err := c.Fetch(context.Background(), mc102, t2024)
	require.NoError(t, err)

	assert.Equal(t, "/2024/1/S/G/IC/MC102", path)
	assert.True(t, off.Offered)
	assert.Equal(t, 6, off.Credits)
	assert.Len(t, off.Sections, 2)
	assert.Equal(t, mc102, off.Subject)
	assert.Equal(t, t2024, off.Term)
	assert.False(t, off.FetchedAt.IsZero())
}

func TestClient_Fetch_NotFoundMeansNotOffered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	off, err := New(Config{BaseURL: srv.URL}, nil).Fetch(context.Background(), mc102, t2024)
	require.NoError(t, err)
	assert.False(t, off.Offered)
	assert.Empty(t, off.Sections)
	assert.Zero(t, off.Credits)
}

func TestClient_Fetch_MalformedPageIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<div class="turma"><div class="panel-body"><ul class="horariosFormatado">
			<li><span class="diaSemana">Segunda</span><span class="horarios">10:00 - 08:00</span></li>
		</ul></div></div>`))
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}, nil).Fetch(context.Background(), mc102, t2024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IC:MC102 in 1s2024")
}

func TestClient_Fetch_SpacesRequests(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	delay := 80 * time.Millisecond
	c := New(Config{BaseURL: srv.URL, Delay: delay}, nil)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.Fetch(context.Background(), mc102, t2024)
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 2*delay)
	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_Fetch_CancelledWhileWaiting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Delay: time.Hour}, nil)
	_, err := c.Fetch(context.Background(), mc102, t2024)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Fetch(ctx, mc102, t2024)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

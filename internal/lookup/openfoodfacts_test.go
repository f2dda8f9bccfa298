package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*OpenFoodFactsClient, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return NewOpenFoodFactsClient(server.URL+"/", 2*time.Second, zap.NewNop()), &calls
}

func assertFailure(t *testing.T, err error, reason string) {
	t.Helper()
	var failure *LookupFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, reason, failure.Reason)
}

func TestLookup_Found(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/3017620422003", r.URL.Path)
		assert.Equal(t, "product_name,brands,image_url", r.URL.Query().Get("fields"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"3017620422003","status":1,"product":{"product_name":"Nutella","brands":"Ferrero","image_url":"https://img/nutella.jpg"}}`))
	})

	product, err := client.Lookup(context.Background(), "3017620422003")

	require.NoError(t, err)
	assert.Equal(t, &Product{
		Barcode:     "3017620422003",
		ProductName: "Nutella",
		Brands:      "Ferrero",
		ImageURL:    "https://img/nutella.jpg",
	}, product)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestLookup_StatusZeroIsNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"0000","status":0,"status_verbose":"product not found"}`))
	})

	_, err := client.Lookup(context.Background(), "0000")

	assertFailure(t, err, ReasonNotFound)
}

func TestLookup_HTTP404IsNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":0}`))
	})

	_, err := client.Lookup(context.Background(), "0000")

	assertFailure(t, err, ReasonNotFound)
}

func TestLookup_ServerErrorIsSingleAttempt(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Lookup(context.Background(), "3017620422003")

	assertFailure(t, err, ReasonUnavailable)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestLookup_MalformedBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := client.Lookup(context.Background(), "3017620422003")

	assertFailure(t, err, ReasonBadResponse)
}

func TestLookup_MissingNameIsIncomplete(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":1,"product":{"product_name":"  ","brands":"Ferrero"}}`))
	})

	_, err := client.Lookup(context.Background(), "3017620422003")

	assertFailure(t, err, ReasonIncomplete)
}

func TestLookup_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewOpenFoodFactsClient(server.URL, time.Second, zap.NewNop())

	_, err := client.Lookup(context.Background(), "3017620422003")

	assertFailure(t, err, ReasonUnavailable)
}

func TestLookup_CancelledContext(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":1,"product":{"product_name":"Nutella"}}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Lookup(ctx, "3017620422003")

	assertFailure(t, err, ReasonUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLookup_EmptyBarcode(t *testing.T) {
	client, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.Lookup(context.Background(), "  ")

	assertFailure(t, err, ReasonNotFound)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

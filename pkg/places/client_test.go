package places

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchParsesDocumentsAndDefaults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KakaoAK test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "Gangnam station Chinese restaurant", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("size"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"documents":[
			{"place_name":"Hong Kong Banjum","address_name":"12 Gangnam-daero","category_name":"Chinese","phone":"02-123-4567","place_url":"http://place.example/1"},
			{"place_name":"Great Wall","address_name":"34 Teheran-ro","category_name":"Chinese"}
		]}`)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	got := c.Search(context.Background(), "Gangnam station Chinese restaurant")
	require.Len(t, got, 2)

	assert.Equal(t, Place{
		Name:      "Hong Kong Banjum",
		Address:   "12 Gangnam-daero",
		Category:  "Chinese",
		Phone:     "02-123-4567",
		DetailURL: "http://place.example/1",
	}, got[0])

	assert.Equal(t, NoInfo, got[1].Phone)
	assert.Equal(t, NoInfo, got[1].DetailURL)
}

func TestSearchCapsResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"documents":[`)
		for i := 0; i < 8; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"place_name":"p%d","address_name":"a","category_name":"c"}`, i)
		}
		fmt.Fprint(w, `]}`)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	got := c.Search(context.Background(), "restaurants")
	assert.Len(t, got, MaxResults)
}

func TestSearchZeroMatches(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"documents":[]}`)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	assert.Empty(t, c.Search(context.Background(), "nothing here"))
}

func TestSearchDegradesOnFailure(t *testing.T) {
	t.Parallel()

	t.Run("non-OK status", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()
		c := NewClient("test-key", WithBaseURL(srv.URL))
		assert.Empty(t, c.Search(context.Background(), "anything"))
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"documents": not json`)
		}))
		defer srv.Close()
		c := NewClient("test-key", WithBaseURL(srv.URL))
		assert.Empty(t, c.Search(context.Background(), "anything"))
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
		c := NewClient("test-key", WithBaseURL(srv.URL))
		assert.Empty(t, c.Search(context.Background(), "anything"))
	})
}

package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(t *testing.T, rt roundTripFunc, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithHTTPClient(&http.Client{Transport: rt})}, opts...)
	c, err := NewClient("2024-10", opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

var testSession = Session{ShopDomain: "shop-a.myshopify.com", AccessToken: "shpat_test"}

func decodeRequest(t *testing.T, req *http.Request) graphQLRequest {
	t.Helper()
	var body graphQLRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	return body
}

func TestDo_SendsRequestToShopEndpoint(t *testing.T) {
	var got *http.Request
	var body graphQLRequest
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		got = req
		body = decodeRequest(t, req)
		return jsonResponse(http.StatusOK, `{"data":{"ok":true}}`), nil
	})

	data, err := c.ListDiscounts(context.Background(), testSession, 25)
	if err != nil {
		t.Fatalf("ListDiscounts: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("data = %s", data)
	}
	if got.Method != http.MethodPost {
		t.Errorf("method = %s, want POST", got.Method)
	}
	if want := "https://shop-a.myshopify.com/admin/api/2024-10/graphql.json"; got.URL.String() != want {
		t.Errorf("url = %s, want %s", got.URL, want)
	}
	if tok := got.Header.Get("X-Shopify-Access-Token"); tok != "shpat_test" {
		t.Errorf("access token header = %q", tok)
	}
	if body.OperationName != "ListDiscounts" {
		t.Errorf("operationName = %q", body.OperationName)
	}
	if first, ok := body.Variables["first"].(float64); !ok || first != 25 {
		t.Errorf("variables.first = %v", body.Variables["first"])
	}
}

func TestDo_WithBaseURL(t *testing.T) {
	var gotURL string
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		return jsonResponse(http.StatusOK, `{"data":{}}`), nil
	}, WithBaseURL("http://127.0.0.1:9999/"))

	if _, err := c.ListDiscounts(context.Background(), testSession, 1); err != nil {
		t.Fatalf("ListDiscounts: %v", err)
	}
	if want := "http://127.0.0.1:9999/admin/api/2024-10/graphql.json"; gotURL != want {
		t.Errorf("url = %s, want %s", gotURL, want)
	}
}

func TestUpdateProductTitle_BindsValuesAsVariables(t *testing.T) {
	hostile := `"}) { shop { name } } mutation Evil {`
	var body graphQLRequest
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		body = decodeRequest(t, req)
		return jsonResponse(http.StatusOK, `{"data":{"productUpdate":{"product":{"id":"gid://shopify/Product/1"}}}}`), nil
	})

	if _, err := c.UpdateProductTitle(context.Background(), testSession, "gid://shopify/Product/1", hostile); err != nil {
		t.Fatalf("UpdateProductTitle: %v", err)
	}
	if body.Query != opUpdateProductTitle.Query {
		t.Error("operation text must be constant")
	}
	if strings.Contains(body.Query, hostile) {
		t.Error("title leaked into operation text")
	}
	input, _ := body.Variables["input"].(map[string]any)
	if input["title"] != hostile {
		t.Errorf("variables.input.title = %v", input["title"])
	}
}

func TestListProducts_AfterCursor(t *testing.T) {
	tests := []struct {
		name  string
		after string
		want  any
	}{
		{"first page", "", nil},
		{"next page", "cursor-1", "cursor-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body graphQLRequest
			c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
				body = decodeRequest(t, req)
				return jsonResponse(http.StatusOK, `{"data":{"products":{"edges":[]}}}`), nil
			})
			if _, err := c.ListProducts(context.Background(), testSession, 2, tt.after); err != nil {
				t.Fatalf("ListProducts: %v", err)
			}
			if body.Variables["after"] != tt.want {
				t.Errorf("after = %v, want %v", body.Variables["after"], tt.want)
			}
		})
	}
}

func TestSetProductMetafield_AppliesDefaults(t *testing.T) {
	var body graphQLRequest
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		body = decodeRequest(t, req)
		return jsonResponse(http.StatusOK, `{"data":{}}`), nil
	})

	_, err := c.SetProductMetafield(context.Background(), testSession, "gid://shopify/Product/1", Metafield{Value: "cotton"})
	if err != nil {
		t.Fatalf("SetProductMetafield: %v", err)
	}
	input := body.Variables["input"].(map[string]any)
	mf := input["metafields"].([]any)[0].(map[string]any)
	if mf["namespace"] != DefaultMetafieldNamespace || mf["key"] != DefaultMetafieldKey || mf["type"] != DefaultMetafieldType {
		t.Errorf("metafield defaults not applied: %v", mf)
	}
	if mf["value"] != "cotton" {
		t.Errorf("value = %v", mf["value"])
	}
	if _, ok := mf["id"]; ok {
		t.Error("id must be omitted when creating a metafield")
	}
}

func TestProductsByIDs(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"data":{"nodes":[
			{"id":"gid://shopify/Product/1","title":"Shirt","handle":"shirt",
			 "featuredImage":{"url":"https://cdn.example.com/shirt.png"},
			 "variants":{"edges":[{"node":{"id":"gid://shopify/ProductVariant/11"}}]}},
			null
		]}}`), nil
	})

	got, err := c.ProductsByIDs(context.Background(), testSession, []string{"gid://shopify/Product/1", "gid://shopify/Product/2"})
	if err != nil {
		t.Fatalf("ProductsByIDs: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	p := got["gid://shopify/Product/1"]
	if p.Handle != "shirt" || p.FirstVariantID != "gid://shopify/ProductVariant/11" || p.ImageURL == "" {
		t.Errorf("unexpected product: %+v", p)
	}
	if _, ok := got["gid://shopify/Product/2"]; ok {
		t.Error("deleted product must be absent")
	}
}

func TestProductsByIDs_EmptySkipsCall(t *testing.T) {
	c := newTestClient(t, func(*http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})
	got, err := c.ProductsByIDs(context.Background(), testSession, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestDo_Errors(t *testing.T) {
	tests := []struct {
		name        string
		session     Session
		rt          roundTripFunc
		wantStatus  int
		wantDetails string
	}{
		{
			name:    "graphql errors",
			session: testSession,
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"data":null,"errors":[{"message":"Throttled"}]}`), nil
			},
			wantStatus:  http.StatusOK,
			wantDetails: `[{"message":"Throttled"}]`,
		},
		{
			name:    "non-2xx json body",
			session: testSession,
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusUnauthorized, `{"errors":"[API] Invalid API key or access token"}`), nil
			},
			wantStatus:  http.StatusUnauthorized,
			wantDetails: `"[API] Invalid API key or access token"`,
		},
		{
			name:    "non-2xx text body",
			session: testSession,
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusBadGateway, "upstream down"), nil
			},
			wantStatus:  http.StatusBadGateway,
			wantDetails: `"upstream down"`,
		},
		{
			name:    "transport failure",
			session: testSession,
			rt: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
		},
		{
			name:    "missing access token",
			session: Session{ShopDomain: "shop-a.myshopify.com"},
			rt: func(*http.Request) (*http.Response, error) {
				t.Fatal("no request expected")
				return nil, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.rt)
			_, err := c.ListDiscounts(context.Background(), tt.session, 25)
			if !errors.Is(err, ErrRemoteAPI) {
				t.Fatalf("expected ErrRemoteAPI, got %v", err)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T", err)
			}
			if apiErr.Operation != "ListDiscounts" {
				t.Errorf("operation = %q", apiErr.Operation)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.wantStatus)
			}
			if string(apiErr.Details) != tt.wantDetails {
				t.Errorf("details = %s, want %s", apiErr.Details, tt.wantDetails)
			}
		})
	}
}

func TestDo_SingleAttempt(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(*http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusServiceUnavailable, ""), nil
	})
	_, _ = c.ListDiscounts(context.Background(), testSession, 25)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return nil, req.Context().Err()
	})
	_, err := c.ListDiscounts(ctx, testSession, 25)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
	if !errors.Is(err, ErrRemoteAPI) {
		t.Fatalf("expected ErrRemoteAPI, got %v", err)
	}
}

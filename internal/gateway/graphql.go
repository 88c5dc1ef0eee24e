package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	graphql "github.com/hasura/go-graphql-client"

	"github.com/Skotchmaster/orders_admin/internal/models"
)

const csrfCookie = "csrftoken"

const (
	searchCustomersQuery = `query SearchCustomers($q: String!, $limit: Int) {
  customers(q: $q, limit: $limit) { id name email createdAt updatedAt }
}`
	customerQuery = `query GetCustomer($id: Int!) {
  customer(id: $id) { id name email createdAt updatedAt }
}`
	searchProductsQuery = `query SearchProducts($q: String!, $limit: Int) {
  products(q: $q, limit: $limit) { id sku name unitPrice stockLevel createdAt updatedAt }
}`
	productQuery = `query GetProduct($id: Int!) {
  product(id: $id) { id sku name unitPrice stockLevel createdAt updatedAt }
}`
)

// GraphQLClient runs the read-only search and lookup queries. Requests carry
// the CSRF token from the API's csrftoken cookie, falling back to a
// configured token until the cookie has been seen.
type GraphQLClient struct {
	endpoint   *url.URL
	httpClient *http.Client
	gql        *graphql.Client
	csrfToken  string
}

func NewGraphQLClient(endpoint string, timeout time.Duration, csrfToken string) (*GraphQLClient, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse graphql endpoint: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := newHTTPClient(timeout)
	hc.Jar = jar

	g := &GraphQLClient{endpoint: u, httpClient: hc, csrfToken: csrfToken}
	g.gql = graphql.NewClient(u.String(), hc).WithRequestModifier(func(r *http.Request) {
		r.Header.Set("Accept", "application/json")
		if tok := g.token(); tok != "" {
			r.Header.Set("X-CSRFToken", tok)
		}
	})
	return g, nil
}

// Prime fetches the endpoint once so the API can set its CSRF cookie.
func (g *GraphQLClient) Prime(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint.String(), nil)
	if err != nil {
		return &NetworkError{Op: "prime csrf", Err: err}
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return translateTransportError("prime csrf", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

func (g *GraphQLClient) token() string {
	for _, c := range g.httpClient.Jar.Cookies(g.endpoint) {
		if c.Name == csrfCookie && c.Value != "" {
			return c.Value
		}
	}
	return g.csrfToken
}

func (g *GraphQLClient) query(ctx context.Context, op, q string, vars map[string]any, out any) error {
	data, err := g.gql.ExecRaw(ctx, q, vars)
	if err != nil {
		return translateGraphQLError(op, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Op: op, Status: http.StatusOK, Raw: data, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

// translateGraphQLError maps the client's error list onto the gateway
// taxonomy. Transport and HTTP status failures keep their REST meaning;
// errors reported by the server in the response body are NetworkErrors.
func translateGraphQLError(op string, err error) error {
	var list graphql.Errors
	if !errors.As(err, &list) {
		return translateTransportError(op, err)
	}

	msgs := make([]string, 0, len(list))
	for _, e := range list {
		inner := e.Unwrap()
		if inner == nil {
			msgs = append(msgs, e.Message)
			continue
		}
		var status graphql.NetworkError
		if errors.As(inner, &status) {
			return translateStatus(op, status.StatusCode(), []byte(status.Body()))
		}
		return translateTransportError(op, inner)
	}
	return &NetworkError{Op: op, Status: http.StatusOK, Err: fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))}
}

// SearchCustomers returns at most limit customers matching q. A blank query
// returns nothing without touching the network.
func (g *GraphQLClient) SearchCustomers(ctx context.Context, q string, limit int) ([]models.CustomerOption, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	var data struct {
		Customers []models.CustomerOption `json:"customers"`
	}
	if err := g.query(ctx, "search customers", searchCustomersQuery, map[string]any{"q": q, "limit": limit}, &data); err != nil {
		return nil, err
	}
	return data.Customers, nil
}

// Customer returns nil when the id is unknown.
func (g *GraphQLClient) Customer(ctx context.Context, id int) (*models.CustomerOption, error) {
	var data struct {
		Customer *models.CustomerOption `json:"customer"`
	}
	if err := g.query(ctx, "get customer", customerQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	return data.Customer, nil
}

func (g *GraphQLClient) SearchProducts(ctx context.Context, q string, limit int) ([]models.ProductOption, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	var data struct {
		Products []models.ProductOption `json:"products"`
	}
	if err := g.query(ctx, "search products", searchProductsQuery, map[string]any{"q": q, "limit": limit}, &data); err != nil {
		return nil, err
	}
	return data.Products, nil
}

func (g *GraphQLClient) Product(ctx context.Context, id int) (*models.ProductOption, error) {
	var data struct {
		Product *models.ProductOption `json:"product"`
	}
	if err := g.query(ctx, "get product", productQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	return data.Product, nil
}

package api

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartRequest "github.com/Alturino/storefront/cart/pkg/request"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/fakestore"
	productRequest "github.com/Alturino/storefront/product/pkg/request"
	userRequest "github.com/Alturino/storefront/user/pkg/request"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token(context.Context) (string, bool) {
	return s.token, s.token != ""
}

func newTestClient(t *testing.T, tokens TokenSource) *Client {
	t.Helper()
	store, err := fakestore.NewStore([]byte("test-secret"))
	require.NoError(t, err)
	server := httptest.NewServer(store.Handler())
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, tokens)
}

func login(t *testing.T, cl *Client) string {
	t.Helper()
	token, err := cl.Login(context.Background(), userRequest.LoginRequest{
		Username: "johnd",
		Password: "m38rmF$",
	})
	require.NoError(t, err)
	return token
}

func TestListProductsPaging(t *testing.T) {
	cl := newTestClient(t, nil)
	c := context.Background()

	first, err := cl.ListProducts(c, productRequest.Listing{Page: 1, Limit: 8})
	require.NoError(t, err)
	require.Len(t, first, 8)

	second, err := cl.ListProducts(c, productRequest.Listing{Page: 2, Limit: 8})
	require.NoError(t, err)
	require.Len(t, second, 8)
	assert.NotEqual(t, first[0].Id, second[0].Id)

	// pages past the catalog end come back empty, not as an error
	past, err := cl.ListProducts(c, productRequest.Listing{Page: 4, Limit: 8})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestListProductsByCategory(t *testing.T) {
	cl := newTestClient(t, nil)
	c := context.Background()

	products, err := cl.ListProducts(c, productRequest.Listing{
		Page:     1,
		Limit:    20,
		Category: "electronics",
	})
	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, product := range products {
		assert.Equal(t, "electronics", product.Category)
	}
}

func TestListProductsSortDesc(t *testing.T) {
	cl := newTestClient(t, nil)
	c := context.Background()

	asc, err := cl.ListProducts(c, productRequest.Listing{Page: 1, Limit: 20})
	require.NoError(t, err)
	desc, err := cl.ListProducts(c, productRequest.Listing{Page: 1, Limit: 20, Sort: "desc"})
	require.NoError(t, err)

	require.Equal(t, len(asc), len(desc))
	assert.Equal(t, asc[0].Id, desc[len(desc)-1].Id)
}

func TestCategories(t *testing.T) {
	cl := newTestClient(t, nil)

	categories, err := cl.Categories(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(
		t,
		[]string{"electronics", "jewelery", "men's clothing", "women's clothing"},
		categories,
	)
}

func TestProduct(t *testing.T) {
	cl := newTestClient(t, nil)

	product, err := cl.Product(context.Background(), "1")
	require.NoError(t, err)
	assert.Contains(t, product.Title, "Fjallraven")
	assert.False(t, product.Price.IsNegative())
}

func TestProductUnknownId(t *testing.T) {
	cl := newTestClient(t, nil)

	_, err := cl.Product(context.Background(), "999")
	assert.ErrorIs(t, err, inErrors.ErrRemoteSync)
}

func TestSearchProducts(t *testing.T) {
	cl := newTestClient(t, nil)

	products, err := cl.SearchProducts(context.Background(), "jacket")
	require.NoError(t, err)
	require.NotEmpty(t, products)
}

func TestLogin(t *testing.T) {
	cl := newTestClient(t, nil)

	token := login(t, cl)
	assert.NotEmpty(t, token)
}

func TestLoginBadCredentials(t *testing.T) {
	cl := newTestClient(t, nil)

	_, err := cl.Login(context.Background(), userRequest.LoginRequest{
		Username: "johnd",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, inErrors.ErrRemoteSync)
}

func TestUser(t *testing.T) {
	cl := newTestClient(t, nil)

	profile, err := cl.User(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "john@gmail.com", profile.Email)
}

func TestCartRequiresToken(t *testing.T) {
	cl := newTestClient(t, nil)
	c := context.Background()

	_, err := cl.Cart(c, "1")
	assert.ErrorIs(t, err, inErrors.ErrAuthRequired)

	err = cl.UpsertCart(c, cartRequest.UpsertCart{
		UserId:   "1",
		Products: []cartRequest.UpsertItem{{Id: "1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, inErrors.ErrAuthRequired)

	assert.ErrorIs(t, cl.DeleteCart(c, "1"), inErrors.ErrAuthRequired)
}

func TestCartRoundTrip(t *testing.T) {
	tokens := &staticTokens{}
	cl := newTestClient(t, tokens)
	c := context.Background()

	tokens.token = login(t, cl)

	err := cl.UpsertCart(c, cartRequest.UpsertCart{
		UserId: "1",
		Products: []cartRequest.UpsertItem{
			{Id: "1", Quantity: 2},
			{Id: "3", Quantity: 1},
		},
	})
	require.NoError(t, err)

	cart, err := cl.Cart(c, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", cart.UserId.String())
	require.Len(t, cart.Products, 2)
	assert.Equal(t, 2, cart.Products[0].Quantity)

	require.NoError(t, cl.DeleteCart(c, "1"))
	cart, err = cl.Cart(c, "1")
	require.NoError(t, err)
	assert.Empty(t, cart.Products)
}

func TestCartRejectsBadToken(t *testing.T) {
	cl := newTestClient(t, staticTokens{token: "not-a-jwt"})

	_, err := cl.Cart(context.Background(), "1")
	assert.ErrorIs(t, err, inErrors.ErrRemoteSync)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cartRequest "github.com/Alturino/storefront/cart/pkg/request"
	cartResponse "github.com/Alturino/storefront/cart/pkg/response"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/validate"
	productRequest "github.com/Alturino/storefront/product/pkg/request"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
	userRequest "github.com/Alturino/storefront/user/pkg/request"
	userResponse "github.com/Alturino/storefront/user/pkg/response"
)

// TokenSource hands out the current bearer token, if any. Calls flagged
// requiresAuth attach it, every other call skips token handling entirely.
type TokenSource interface {
	Token(c context.Context) (string, bool)
}

type anonymous struct{}

func (anonymous) Token(context.Context) (string, bool) { return "", false }

// Client consumes the store api. Decoded payloads run through the shared
// validator, an invalid payload fails the call instead of flowing downstream.
type Client struct {
	baseUrl  string
	http     *http.Client
	tokens   TokenSource
	validate *validator.Validate
}

func NewClient(baseUrl string, timeout time.Duration, tokens TokenSource) *Client {
	if tokens == nil {
		tokens = anonymous{}
	}
	return &Client{
		baseUrl: baseUrl,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens:   tokens,
		validate: validate.New(),
	}
}

func (cl *Client) do(
	c context.Context,
	method, path string,
	query url.Values,
	body interface{},
	requiresAuth bool,
	out interface{},
) error {
	c, span := otel.Tracer.Start(c, "Client "+method+" "+path)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Client do").
		Str(log.KeyUrl, cl.baseUrl+path).
		Logger()

	var payload *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			err = fmt.Errorf("failed marshaling request body with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		payload = bytes.NewBuffer(raw)
	}

	target := cl.baseUrl + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(c, method, target, payload)
	if err != nil {
		err = fmt.Errorf("failed creating request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if requiresAuth {
		token, ok := cl.tokens.Token(c)
		if !ok {
			otel.RecordError(inErrors.ErrAuthRequired, span)
			logger.Error().
				Err(inErrors.ErrAuthRequired).
				Msg(inErrors.ErrAuthRequired.Error())
			return inErrors.ErrAuthRequired
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := cl.http.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: %s %s failed with error=%s",
			inErrors.ErrRemoteSync, method, path, err.Error())
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err = fmt.Errorf("%w: %s %s returned status=%d",
			inErrors.ErrRemoteSync, method, path, resp.StatusCode)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		err = fmt.Errorf("%w: failed decoding %s %s response with error=%s",
			inErrors.ErrInvalidPayload, method, path, err.Error())
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	return nil
}

func (cl *Client) validateProducts(products []productResponse.Product) error {
	for _, product := range products {
		if err := cl.validate.Struct(product); err != nil {
			return fmt.Errorf("%w: %s", inErrors.ErrInvalidPayload, err.Error())
		}
	}
	return nil
}

// ListProducts fetches one catalog page, optionally narrowed by category and
// ordered by the requested sort.
func (cl *Client) ListProducts(
	c context.Context,
	param productRequest.Listing,
) ([]productResponse.Product, error) {
	if err := cl.validate.Struct(param); err != nil {
		return nil, fmt.Errorf("invalid listing request with error=%w", err)
	}

	path := "/products"
	if param.Category != "" {
		path = "/products/category/" + url.PathEscape(param.Category)
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(param.Limit))
	query.Set("page", strconv.Itoa(param.Page))
	if param.Sort != "" {
		query.Set("sort", param.Sort)
	}

	products := []productResponse.Product{}
	if err := cl.do(c, http.MethodGet, path, query, nil, false, &products); err != nil {
		return nil, err
	}
	if err := cl.validateProducts(products); err != nil {
		return nil, err
	}
	return products, nil
}

func (cl *Client) Categories(c context.Context) ([]string, error) {
	categories := []string{}
	err := cl.do(c, http.MethodGet, "/products/categories", nil, nil, false, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (cl *Client) Product(
	c context.Context,
	id string,
) (productResponse.Product, error) {
	product := productResponse.Product{}
	err := cl.do(c, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, false, &product)
	if err != nil {
		return productResponse.Product{}, err
	}
	if err := cl.validate.Struct(product); err != nil {
		return productResponse.Product{}, fmt.Errorf(
			"%w: %s", inErrors.ErrInvalidPayload, err.Error(),
		)
	}
	return product, nil
}

// SearchProducts queries the catalog with the search text. The api treats q
// loosely so results are narrowed again client side by the caller.
func (cl *Client) SearchProducts(
	c context.Context,
	q string,
) ([]productResponse.Product, error) {
	query := url.Values{}
	query.Set("q", q)
	products := []productResponse.Product{}
	if err := cl.do(c, http.MethodGet, "/products", query, nil, false, &products); err != nil {
		return nil, err
	}
	if err := cl.validateProducts(products); err != nil {
		return nil, err
	}
	return products, nil
}

func (cl *Client) Cart(
	c context.Context,
	userId string,
) (cartResponse.RemoteCart, error) {
	cart := cartResponse.RemoteCart{}
	err := cl.do(c, http.MethodGet, "/carts/"+url.PathEscape(userId), nil, nil, true, &cart)
	if err != nil {
		return cartResponse.RemoteCart{}, err
	}
	for _, item := range cart.Products {
		if err := cl.validate.Struct(item); err != nil {
			return cartResponse.RemoteCart{}, fmt.Errorf(
				"%w: %s", inErrors.ErrInvalidPayload, err.Error(),
			)
		}
	}
	return cart, nil
}

func (cl *Client) UpsertCart(c context.Context, param cartRequest.UpsertCart) error {
	if err := cl.validate.Struct(param); err != nil {
		return fmt.Errorf("invalid cart payload with error=%w", err)
	}
	return cl.do(c, http.MethodPost, "/carts", nil, param, true, nil)
}

func (cl *Client) DeleteCart(c context.Context, userId string) error {
	return cl.do(c, http.MethodDelete, "/carts/"+url.PathEscape(userId), nil, nil, true, nil)
}

// Login exchanges credentials for a bearer token. The wire payload is built
// here because LoginRequest redacts its password when marshaled.
func (cl *Client) Login(
	c context.Context,
	param userRequest.LoginRequest,
) (string, error) {
	if err := cl.validate.Struct(param); err != nil {
		return "", fmt.Errorf("invalid login request with error=%w", err)
	}
	body := map[string]string{
		"username": param.Username,
		"password": param.Password,
	}
	token := userResponse.Token{}
	if err := cl.do(c, http.MethodPost, "/auth/login", nil, body, false, &token); err != nil {
		return "", err
	}
	if err := cl.validate.Struct(token); err != nil {
		return "", fmt.Errorf("%w: %s", inErrors.ErrInvalidPayload, err.Error())
	}
	return token.Token, nil
}

func (cl *Client) User(
	c context.Context,
	id string,
) (userResponse.Profile, error) {
	profile := userResponse.Profile{}
	err := cl.do(c, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, false, &profile)
	if err != nil {
		return userResponse.Profile{}, err
	}
	if err := cl.validate.Struct(profile); err != nil {
		return userResponse.Profile{}, fmt.Errorf(
			"%w: %s", inErrors.ErrInvalidPayload, err.Error(),
		)
	}
	return profile, nil
}

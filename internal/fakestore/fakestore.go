// Package fakestore is an in-memory stand-in for the public catalog api. The
// mock command serves it for offline use and the api-facing tests run against
// it through httptest.
package fakestore

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	cartRequest "github.com/Alturino/storefront/cart/pkg/request"
	cartResponse "github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/product/pkg/response"
	userResponse "github.com/Alturino/storefront/user/pkg/response"
)

const (
	demoUsername = "johnd"
	demoPassword = "m38rmF$"
	demoUserId   = "1"
	tokenTtl     = 2 * time.Hour
)

type Store struct {
	mu           sync.Mutex
	products     []response.Product
	carts        map[string][]cartResponse.RemoteCartItem
	profile      userResponse.Profile
	passwordHash []byte
	secret       []byte
}

func NewStore(secret []byte) (*Store, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed hashing demo password with error=%w", err)
	}
	return &Store{
		products: seedProducts(),
		carts:    map[string][]cartResponse.RemoteCartItem{},
		profile: userResponse.Profile{
			Id:       json.Number(demoUserId),
			Email:    "john@gmail.com",
			Username: demoUsername,
			Name:     userResponse.Name{Firstname: "john", Lastname: "doe"},
		},
		passwordHash: hash,
		secret:       secret,
	}, nil
}

func (s *Store) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(logging)

	router.HandleFunc("/products", s.listProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/categories", s.categories).Methods(http.MethodGet)
	router.HandleFunc("/products/category/{category}", s.listProducts).
		Methods(http.MethodGet)
	router.HandleFunc("/products/{id}", s.product).Methods(http.MethodGet)
	router.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}", s.user).Methods(http.MethodGet)

	carts := router.PathPrefix("/carts").Subrouter()
	carts.Use(s.auth)
	carts.HandleFunc("", s.upsertCart).Methods(http.MethodPost)
	carts.HandleFunc("/{userId}", s.cart).Methods(http.MethodGet)
	carts.HandleFunc("/{userId}", s.deleteCart).Methods(http.MethodDelete)

	return router
}

func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).
			Debug().
			Str(log.KeyTag, "fakestore").
			Str(log.KeyUrl, r.URL.String()).
			Msgf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJson(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Store) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]response.Product, 0, len(s.products))
	category := mux.Vars(r)["category"]
	q := strings.ToLower(r.URL.Query().Get("q"))
	for _, product := range s.products {
		if category != "" && product.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(product.Title), q) {
			continue
		}
		matched = append(matched, product)
	}

	if r.URL.Query().Get("sort") == "desc" {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}

	limit := len(matched)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}

	start := (page - 1) * limit
	if start >= len(matched) {
		writeJson(w, http.StatusOK, []response.Product{})
		return
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	writeJson(w, http.StatusOK, matched[start:end])
}

func (s *Store) categories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{}
	categories := []string{}
	for _, product := range s.products {
		if seen[product.Category] {
			continue
		}
		seen[product.Category] = true
		categories = append(categories, product.Category)
	}
	writeJson(w, http.StatusOK, categories)
}

func (s *Store) product(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := mux.Vars(r)["id"]
	for _, product := range s.products {
		if product.Id.String() == id {
			writeJson(w, http.StatusOK, product)
			return
		}
	}
	writeJson(w, http.StatusNotFound, map[string]string{"message": "product not found"})
}

func (s *Store) login(w http.ResponseWriter, r *http.Request) {
	credentials := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeJson(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	s.mu.Lock()
	hash := s.passwordHash
	s.mu.Unlock()

	if credentials.Username != demoUsername ||
		bcrypt.CompareHashAndPassword(hash, []byte(credentials.Password)) != nil {
		writeJson(w, http.StatusUnauthorized, map[string]string{
			"message": "username or password is incorrect",
		})
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  demoUserId,
		"user": credentials.Username,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTtl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		writeJson(w, http.StatusInternalServerError, map[string]string{
			"message": err.Error(),
		})
		return
	}
	writeJson(w, http.StatusOK, map[string]string{"token": signed})
}

func (s *Store) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization := r.Header.Get("Authorization")
		if !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
			writeJson(w, http.StatusUnauthorized, map[string]string{
				"message": "missing authorization",
			})
			return
		}
		token := authorization[len("bearer "):]
		_, err := jwt.Parse(
			token,
			func(*jwt.Token) (interface{}, error) { return s.secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
			jwt.WithExpirationRequired(),
		)
		if err != nil {
			writeJson(w, http.StatusUnauthorized, map[string]string{
				"message": "invalid token",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Store) cart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userId := mux.Vars(r)["userId"]
	writeJson(w, http.StatusOK, cartResponse.RemoteCart{
		UserId:   json.Number(userId),
		Products: s.carts[userId],
	})
}

func (s *Store) upsertCart(w http.ResponseWriter, r *http.Request) {
	param := cartRequest.UpsertCart{}
	if err := json.NewDecoder(r.Body).Decode(&param); err != nil {
		writeJson(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	lines := make([]cartResponse.RemoteCartItem, len(param.Products))
	for i, item := range param.Products {
		lines[i] = cartResponse.RemoteCartItem{
			ProductId: response.ProductId(item.Id),
			Quantity:  item.Quantity,
		}
	}

	s.mu.Lock()
	s.carts[param.UserId] = lines
	s.mu.Unlock()

	writeJson(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Store) deleteCart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.carts, mux.Vars(r)["userId"])
	s.mu.Unlock()
	writeJson(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Store) user(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mux.Vars(r)["id"] != s.profile.Id.String() {
		writeJson(w, http.StatusNotFound, map[string]string{"message": "user not found"})
		return
	}
	writeJson(w, http.StatusOK, s.profile)
}

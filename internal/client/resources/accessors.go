package resources

import (
	"context"

	"github.com/dmitrijs2005/shopfront/internal/client/models"
)

type Addresses = Collection[models.Address]
type Orders = Collection[models.Order]
type Products = Collection[models.Product]

type Carts struct {
	Collection[models.CartItem]
}

// Total asks the server how many items the caller's cart holds.
func (c Carts) Total(ctx context.Context) (models.CartTotal, error) {
	var out models.CartTotal
	err := c.r.Get(ctx, c.path+"/total", nil, &out)
	return out, err
}

type Users struct {
	r Requester
}

// Me returns the principal behind the current credential.
func (u Users) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := u.r.Get(ctx, collectionPrefix+"user/me", nil, &out)
	return out, err
}

func (u Users) Update(ctx context.Context, id string, body models.UserUpdate) (models.User, error) {
	var out models.User
	err := u.r.Put(ctx, collectionPrefix+"user/"+id, body, &out)
	return out, err
}

type Auth struct {
	r Requester
}

func (a Auth) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	var out models.LoginResult
	err := a.r.Post(ctx, "/auth/login", models.LoginRequest{Email: email, Password: password}, &out)
	return out, err
}

// LoginWithGoogle exchanges a federated ID token for a session.
func (a Auth) LoginWithGoogle(ctx context.Context, token string) (models.LoginResult, error) {
	var out models.LoginResult
	err := a.r.Post(ctx, "/auth/google-login", models.GoogleLoginRequest{Token: token}, &out)
	return out, err
}

type Verification struct {
	r Requester
}

func (v Verification) Send(ctx context.Context, phone string) (models.VerificationResult, error) {
	var out models.VerificationResult
	err := v.r.Post(ctx, "/phone/send-verification", models.SendVerificationRequest{PhoneNumber: phone}, &out)
	return out, err
}

func (v Verification) Verify(ctx context.Context, phone, code string) (models.VerificationResult, error) {
	var out models.VerificationResult
	err := v.r.Post(ctx, "/phone/verify-code", models.VerifyCodeRequest{PhoneNumber: phone, Code: code}, &out)
	return out, err
}

// Set bundles every accessor over one transport.
type Set struct {
	Addresses    Addresses
	Carts        Carts
	Orders       Orders
	Products     Products
	Users        Users
	Auth         Auth
	Verification Verification
}

func New(r Requester) *Set {
	return &Set{
		Addresses:    NewCollection[models.Address](r, "address"),
		Carts:        Carts{NewCollection[models.CartItem](r, "cart")},
		Orders:       NewCollection[models.Order](r, "order"),
		Products:     NewCollection[models.Product](r, "product"),
		Users:        Users{r: r},
		Auth:         Auth{r: r},
		Verification: Verification{r: r},
	}
}

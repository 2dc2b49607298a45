package auth

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// AuthController exposes the HTTP surface: registration, login, and the
// guarded profile routes. All dependencies are passed at construction.
type AuthController struct {
	Logger     Logger
	Auther     Authenticator
	Store      Users
	Guard      fiber.Handler
	ContextKey string
	BcryptCost int
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:     defLogger{},
		ContextKey: "user",
		BcryptCost: DefaultBcryptCost,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.Store == nil {
		panic("Missing Users store in auth controller...")
	}

	if c.Guard == nil {
		panic("Missing guard middleware in auth controller...")
	}

	return c
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithControllerAuther(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithControllerStore(store Users) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Store = store
		return c
	}
}

func WithControllerGuard(guard fiber.Handler) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Guard = guard
		return c
	}
}

func WithControllerContextKey(key string) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if key != "" {
			c.ContextKey = key
		}
		return c
	}
}

func WithControllerBcryptCost(cost int) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if cost > 0 {
			c.BcryptCost = cost
		}
		return c
	}
}

// RegisterAuthRoutes mounts the public and guarded routes on the app.
func RegisterAuthRoutes(app fiber.Router, controller *AuthController) {
	app.Post("/register", controller.RegistrationCreate)
	app.Post("/login", controller.LoginPost)

	me := app.Group("/users/me", controller.Guard)
	me.Get("/", controller.ProfileShow)
	me.Put("/", controller.ProfileUpdate)
	me.Delete("/", controller.ProfileDelete)
}

// RegistrationCreatePayload is the registration body
type RegistrationCreatePayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
}

// Validate will validate the payload
func (r RegistrationCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Name, validation.Length(0, 200)),
	)
}

func (a *AuthController) RegistrationCreate(c *fiber.Ctx) error {
	payload := new(RegistrationCreatePayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register user parse payload", "error", err)
		return a.validationError(c, err)
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register user validate payload", "error", err)
		return a.validationError(c, err)
	}

	profile, err := a.Auther.Register(c.Context(), RegisterInput{
		Email:    payload.Email,
		Password: payload.Password,
		Name:     payload.Name,
	})
	if err != nil {
		a.Logger.Error("register user", "error", err)
		return a.errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return a.validationError(c, err)
	}

	if err := payload.Validate(); err != nil {
		return a.validationError(c, err)
	}

	token, err := a.Auther.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return a.errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"accessToken": token,
	})
}

func (a *AuthController) ProfileShow(c *fiber.Ctx) error {
	id, err := a.subjectID(c)
	if err != nil {
		return a.errorResponse(c, err)
	}

	user, err := a.Store.GetByID(c.Context(), id)
	if err != nil {
		return a.errorResponse(c, err)
	}

	return c.JSON(user.Public())
}

// UpdateProfilePayload is the profile update body. Nil fields are left
// untouched; a password update is re-hashed before it reaches the store.
type UpdateProfilePayload struct {
	Name     *string `json:"name" form:"name"`
	Password *string `json:"password" form:"password"`
}

// Validate will validate the payload
func (r UpdateProfilePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 200)),
		validation.Field(&r.Password, validation.Length(1, 200)),
	)
}

func (a *AuthController) ProfileUpdate(c *fiber.Ctx) error {
	id, err := a.subjectID(c)
	if err != nil {
		return a.errorResponse(c, err)
	}

	payload := new(UpdateProfilePayload)
	if err := c.BodyParser(payload); err != nil {
		return a.validationError(c, err)
	}

	if err := payload.Validate(); err != nil {
		return a.validationError(c, err)
	}

	update := UserUpdate{Name: payload.Name}

	if payload.Password != nil {
		hash, err := HashPasswordCost(*payload.Password, a.BcryptCost)
		if err != nil {
			return a.validationError(c, err)
		}
		update.PasswordHash = &hash
	}

	user, err := a.Store.Update(c.Context(), id, update)
	if err != nil {
		a.Logger.Error("profile update", "error", err)
		return a.errorResponse(c, err)
	}

	return c.JSON(user.Public())
}

func (a *AuthController) ProfileDelete(c *fiber.Ctx) error {
	id, err := a.subjectID(c)
	if err != nil {
		return a.errorResponse(c, err)
	}

	if err := a.Store.Delete(c.Context(), id); err != nil {
		a.Logger.Error("profile delete", "error", err)
		return a.errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"deleted": true,
	})
}

// subjectID resolves the authenticated subject from the claims the guard
// attached. A missing or unparseable subject means the guard did not run or
// the token was minted for a non-UUID subject; both are rejections.
func (a *AuthController) subjectID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, ok := ClaimsFromFiber(c, a.ContextKey)
	if !ok {
		return uuid.Nil, ErrUnauthenticated
	}

	id, err := claims.UserID()
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}

	return id, nil
}

func (a *AuthController) validationError(c *fiber.Ctx, err error) error {
	body := fiber.Map{
		"message": "Validation failed",
	}

	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		body["fields"] = fieldErrors
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": body,
	})
}

// errorResponse maps rich errors to a response carrying only the error kind
// and a generic message. Internal details never reach the caller.
func (a *AuthController) errorResponse(c *fiber.Ctx, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
			WithCode(goerrors.CodeInternal)
	}

	status := richErr.Code
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	message := richErr.Message
	textCode := richErr.TextCode
	if richErr.Category == goerrors.CategoryInternal {
		message = "An unexpected server error occurred"
		textCode = "INTERNAL"
	}

	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"message":   message,
			"text_code": textCode,
		},
	})
}

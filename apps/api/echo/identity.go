package echoapi

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/guard"
	"github.com/trezcool/elimu/core/identity"
)

type authApi struct {
	conf     *core.Config
	gate     *identity.Gate
	dir      identity.Directory
	mailSvc  core.EmailService
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := authApi{
		conf:     deps.Conf,
		gate:     deps.Gate,
		dir:      deps.Directory,
		mailSvc:  deps.MailSvc,
		validate: deps.Validate,
	}

	ag := g.Group("/auth")

	// un-authed endpoints
	// TODO: rate limit `/login` & `/password-reset`
	ag.POST("/login", api.login)
	ag.POST("/register", api.register)
	ag.POST("/password-reset", api.resetPassword)
	ag.GET("/session", api.session)

	// authed endpoints
	tg := ag.Group("", jwt)
	tg.POST("/logout", api.logout)
	tg.POST("/token-refresh", api.refreshToken)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data identity.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	// the gate collapses every non-match to a single negative result
	if ok := api.gate.Login(data.Email, data.Secret, data.Role); !ok {
		return core.NewValidationError(errors.New("invalid credentials"))
	}

	sess := api.gate.Current()
	if sess == nil { // a concurrent logout cleared it
		return errUnauthorized
	}
	token, err := GenerateToken(api.conf, GetSessionClaims(api.conf, *sess))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: *sess})
}

func (api *authApi) register(ctx echo.Context) error {
	var data identity.Registration
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Registration")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sess := api.gate.Register(data.Name, data.Email, data.Secret)
	token, err := GenerateToken(api.conf, GetSessionClaims(api.conf, sess))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusCreated, LoginResponse{Token: token, User: sess})
}

func (api *authApi) logout(ctx echo.Context) error {
	api.gate.Logout()
	return ctx.NoContent(http.StatusNoContent)
}

// session exposes the gate's rehydrated state to the routing
// collaborator, along with the inverse-guard redirect: an authenticated
// client on an auth-only screen belongs on its role home.
func (api *authApi) session(ctx echo.Context) error {
	loading := api.gate.Loading()
	sess := api.gate.Current()
	decision := guard.EvaluateAnon(loading, sess)
	return ctx.JSON(http.StatusOK, SessionResponse{
		User:     sess,
		Loading:  loading,
		Redirect: decision.Redirect,
	})
}

func (api *authApi) resetPassword(ctx echo.Context) error {
	var data PasswordResetRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PasswordResetRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	// do not disclose whether the address is known
	if ident, err := api.dir.GetByEmail(data.Email); err == nil {
		api.mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: ident.Name, Address: ident.Email}},
			Subject: "Password Reset",
			Body: fmt.Sprintf(
				"Hi %s,\n\nA sign-in assistance request was received for your account.\n"+
					"Visit %s/login to sign in, or ignore this email if you did not request it.",
				ident.Name, api.conf.FrontendBaseURL,
			),
		})
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{
		Success: "If the email address supplied is associated with an active account on this system, " +
			"an email will arrive in your inbox shortly with instructions to reset your password.",
	})
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.conf)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

type (
	LoginResponse struct {
		Token string           `json:"token"`
		User  identity.Session `json:"user"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}

	SessionResponse struct {
		User     *identity.Session `json:"user"`
		Loading  bool              `json:"loading"`
		Redirect string            `json:"redirect,omitempty"`
	}

	PasswordResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (pr *PasswordResetRequest) Validate(validate *validator.Validate) error {
	pr.Email = core.CleanString(pr.Email, true /* lower */)
	return validate.Struct(pr)
}

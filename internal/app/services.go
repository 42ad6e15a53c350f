package app

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Alijeyrad/contact_relay/config"
	"github.com/Alijeyrad/contact_relay/internal/service/contact"
	"github.com/Alijeyrad/contact_relay/pkg/email"
	"github.com/Alijeyrad/contact_relay/pkg/mailcheck"
	"github.com/Alijeyrad/contact_relay/pkg/observability"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(ProvideContactService),
)

type contactParams struct {
	fx.In

	Cfg      *config.Config
	Verifier *mailcheck.Client
	Mailer   *email.Client
	Log      *slog.Logger
	// Requested so the meter provider is installed before the service
	// creates its instruments.
	OTel *observability.Provider `optional:"true"`
}

func ProvideContactService(p contactParams) contact.Service {
	return contact.New(contact.ConfigFromCentral(p.Cfg), p.Verifier, p.Mailer, p.Log.With("component", "contact"))
}

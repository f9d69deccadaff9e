package inject

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	appconfig "github.com/dmorgan81/zimage/internal/config"
	"github.com/dmorgan81/zimage/internal/feed"
	"github.com/dmorgan81/zimage/internal/image"
	"github.com/dmorgan81/zimage/internal/log"
	"github.com/dmorgan81/zimage/internal/page"
	"github.com/dmorgan81/zimage/internal/param"
	"github.com/dmorgan81/zimage/internal/session"
	"github.com/dmorgan81/zimage/internal/web"
	"github.com/samber/do"
)

func Setup(ctx context.Context, cfg *appconfig.Config) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	})
	do.ProvideValue[*appconfig.Config](injector, cfg)
	do.ProvideValue[*slog.Logger](injector, log)

	// AWS is only touched when the default credential lives in Parameter Store
	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return config.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[param.Fetcher](injector, param.NewParameterStoreFetcher)

	do.ProvideNamed[string](injector, "credential", func(i *do.Injector) (string, error) {
		if cfg.APIKeyParam == "" {
			return cfg.APIKey, nil
		}
		return do.MustInvoke[param.Fetcher](i).Fetch(ctx, cfg.APIKeyParam)
	})

	do.ProvideValue[*http.Client](injector, &http.Client{})
	do.Provide[image.Generator](injector, image.NewProxyGenerator)
	do.Provide[*session.Manager](injector, session.NewManager)
	do.Provide[*page.Templator](injector, page.NewTemplator)
	do.Provide[*feed.Generator](injector, feed.NewGenerator)
	do.Provide[*web.Handler](injector, web.NewHandler)
	do.Provide[http.Handler](injector, web.NewRouter)

	return injector
}

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clog"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/config"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/feed"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/proofs"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
)

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	port := viper.GetInt("port")
	if port == 0 {
		port = config.GetIntKeyWithDefault(config.KeyPort, 8080)
	}

	db := clubdb.MustConnectToDB()
	stors := stor.NewGormStors(db)

	issuer := clubauth.NewSessionIssuer(config.MustGetKey(config.KeySessionSecret),
		config.GetDurationKeyWithDefault(config.KeySessionTTL, 12*time.Hour))
	gate := clubauth.NewGate(stors.MembershipStor)

	hub := feed.NewHub(issuer.Parse, gate.Resolve)
	go hub.Run(ctx)

	proofsDir := config.GetKeyWithDefault(config.KeyProofsDir, "proofs")
	proofsHandler, err := proofs.NewHandler(proofsDir, proofsBasePath, proofs.DefaultMaxSize,
		proofs.NewProofHookHandler(issuer, gate, stors.ProofUploadStor))
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupRoutes(RouteDependencies{
		e:         e,
		stors:     stors,
		gate:      gate,
		issuer:    issuer,
		hub:       hub,
		proofs:    proofsHandler,
		logging:   clog.Global(),
		rateLimit: config.GetIntKeyWithDefault(config.KeyRateLimit, 20),
	})

	go func() {
		log.Infof("Listening on port %d, proofs in %s", port, proofsDir)
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Unable to start web server: %s", err)
		}
	}()

	<-ctx.Done()
	log.Infof("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"retrocast/relay"
)

func main() {
	viper.SetEnvPrefix("relayd")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetConfigName("relayd")
	viper.AddConfigPath(".")
	viper.SetDefault("addr", ":8090")
	viper.SetDefault("public_url", "http://localhost:8090")
	viper.SetDefault("db.path", "relayd.db")
	viper.SetDefault("log.level", "info")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	}

	level, err := zerolog.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	var store *relay.Store
	if path := viper.GetString("db.path"); path != "" {
		store, err = relay.OpenStore(path)
		if err != nil {
			log.Fatal().Err(err).Msg("open store")
		}
		defer store.Close()
	}

	rooms := relay.NewManager(store, log)
	hub := relay.NewHub(rooms, log)
	go hub.Run()

	srv := relay.NewServer(hub, rooms, viper.GetString("public_url"), log)
	addr := viper.GetString("addr")
	httpSrv := &http.Server{Addr: addr, Handler: srv.Routes()}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", addr).Msg("relay listening")
		if err := httpSrv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	<-stop
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpSrv.Shutdown(ctx)
}

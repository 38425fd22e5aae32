package main

import (
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/config"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/routes"
	"github.com/TruongVinhKiet/Vietnam-Healthy-Life-sub001/services"

	"github.com/sirupsen/logrus"
)

func main() {
	config.InitDB()

	hub := services.NewRealtimeHub()
	ps, err := services.NewPushService(config.DB)
	if err != nil {
		// Push is optional; the app runs without SNS credentials.
		logrus.WithError(err).Warn("push service disabled")
		ps = nil
	}
	services.InitAlertDeps(hub, ps)

	r := routes.SetupRouter(hub, ps)
	if err := r.Run(":8080"); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}

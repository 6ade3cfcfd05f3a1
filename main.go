package main

import (
	"github.com/answerhub/backend/internal/client"
	"github.com/answerhub/backend/internal/controller"
	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/repository"
	"github.com/answerhub/backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config := dto.LoadConfig()

	// TranslateError surfaces unique index violations as
	// gorm.ErrDuplicatedKey, which the vote ledger relies on.
	db, err := gorm.Open(postgres.Open(config.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Panic(err)
	}

	repositories := repository.NewRepositories(db)
	clients := client.NewClients(config)
	services := service.NewServices(repositories, config, clients)

	services.RateLimit().Start()
	defer services.RateLimit().Stop()
	defer clients.RabbitMQClient().Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	controllers := controller.NewControllers(services)
	controllers.Route(e)

	logrus.Infof("Listening on %s", config.HTTPAddress)
	if err := e.Start(config.HTTPAddress); err != nil {
		logrus.Panic(err)
	}
}

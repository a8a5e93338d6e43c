package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"vms-console/config"
	apiv1 "vms-console/controllers/v1"
	"vms-console/db"
	"vms-console/fiberlog"
	"vms-console/initializers"
	"vms-console/lib/workspace"
	"vms-console/lib/ws"
	"vms-console/middleware"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		// запас сверх лимита, чтобы ответ 413 формировал WithBodyLimit
		BodyLimit: int(config.Conf.App.BodyLimit) + 1024*1024,
	})
	app.Use(fiberRecover.New())

	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: swaggerFile,
		}))
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.WithBodyLimit(config.Conf.App.BodyLimit))
	apiv1.InitAuthApiRouters(apiV1)
	apiv1.InitPasswordApiRouters(apiV1)

	//консоль администратора
	apiv1.InitJobsApiRouters(apiV1)
	apiv1.InitVendorsApiRouters(apiV1)
	apiv1.InitAssignmentApiRouters(apiV1)
	apiv1.InitProfileApiRouters(apiV1)
	apiv1.InitExportApiRouters(apiV1)

	//кабинет вендора
	apiv1.InitPortalApiRouters(apiV1)

	//тосты
	wsRouter := app.Group("/ws")
	ws.InitPasswordWs(wsRouter.Group("/password"))
	toasts := wsRouter.Group("", middleware.AuthorizationRequired(), middleware.SessionRequired())
	ws.InitWs(toasts)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-c:
		case <-ctx.Done():
			return
		}
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		// ждем подтверждений, уже отправленных в сервис вакансий
		workspace.Instance.WaitAll()
		initializers.CloseSessionStore()
		db.Close()
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}

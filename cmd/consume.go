package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"treko/internal/config"
	"treko/internal/model"
	"treko/internal/verify"
)

var consumeCommand = &cobra.Command{
	Use:   "consume",
	Short: "Run the headshot verification worker",
	Long:  `Consume headshot verification jobs from NSQ`,
	Run: func(cmd *cobra.Command, args []string) {
		conf, err := config.InitConfig(configFile)
		if err != nil {
			logrus.Fatal("initConfig error, ", err.Error())
		}

		db, err := model.InitDB(conf.DB)
		if err != nil {
			logrus.Fatal("failed to init database", err)
		}
		defer func() {
			sqlDB, _ := db.DB()
			sqlDB.Close()
		}()

		if conf.Redis.Addr != "" {
			model.InitRedis(conf.Redis)
		}

		w, err := verify.NewWorker(conf)
		if err != nil {
			logrus.Fatalf("failed to create verification worker: %v", err)
		}
		if err := w.Start(); err != nil {
			logrus.Fatalf("failed to start verification worker: %v", err)
		}

		termChan := make(chan os.Signal, 1)
		signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)

		<-termChan
		logrus.Infof("verification worker is shutting down...")
		w.Stop()
	},
}

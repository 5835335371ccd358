package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-backend/internal/config"
	"inventory-backend/internal/database"
	"inventory-backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[FATAL] konfigürasyon hatası: %v", err)
	}

	st, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	app := server.New(cfg, st, server.Options{AccessLog: true})

	go func() {
		log.Println("API sunucusu çalışıyor port:", cfg.HTTPPort)
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			log.Fatal(err)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	log.Println("Kapatılıyor:", s.String())

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("HTTP kapatma hatası: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := st.Close(ctx); err != nil {
		log.Printf("Depo kapatma hatası: %v", err)
	}
	log.Println("Sunucu durdu.")
}

package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	_ "github.com/hugohenrick/connector-agent/docs"
	"github.com/hugohenrick/connector-agent/internal/config"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	// Criar aplicação
	app, err := NewApp(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Erro ao iniciar aplicação: %v", err)
	}
	defer app.Close()

	// Iniciar o servidor
	if err := app.Start(); err != nil {
		log.Printf("%v", err)
	}
}

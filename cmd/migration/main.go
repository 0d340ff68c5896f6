package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/hugohenrick/connector-agent/internal/config"
	"github.com/hugohenrick/connector-agent/internal/infrastructure/database"
)

func main() {
	down := flag.Bool("down", false, "desfaz a última migração em vez de aplicar as pendentes")
	path := flag.String("path", "", "diretório das migrações (padrão: MIGRATIONS_PATH)")
	flag.Parse()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("Banco de dados não configurado: defina DATABASE_URL ou DB_HOST")
	}
	migrationsPath := cfg.MigrationsPath
	if *path != "" {
		migrationsPath = *path
	}

	if *down {
		if err := database.RollbackMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
			log.Fatalf("Erro ao desfazer migração: %v", err)
		}
		log.Println("Última migração desfeita com sucesso!")
		return
	}

	version, err := database.RunMigrations(cfg.DatabaseURL, migrationsPath)
	if err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}
	log.Printf("Migrações executadas com sucesso! Versão atual: %d", version)
}

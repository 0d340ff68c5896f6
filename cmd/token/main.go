// Command token emite um token JWT de operador assinado com JWT_SECRET_KEY.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hugohenrick/connector-agent/internal/config"
	"github.com/hugohenrick/connector-agent/pkg/auth"
)

func main() {
	userID := flag.String("user", "", "ID do operador (obrigatório)")
	tenantID := flag.String("tenant", "default", "ID do tenant")
	name := flag.String("name", "", "nome do operador")
	role := flag.String("role", "operator", "papel do operador")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}
	if *userID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	svc, err := auth.NewJWTService(cfg.JWTSecretKey, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		log.Fatalf("Erro ao configurar JWT: %v", err)
	}

	token, err := svc.GenerateToken(auth.Operator{
		UserID:   *userID,
		TenantID: *tenantID,
		Name:     *name,
		Role:     *role,
	})
	if err != nil {
		log.Fatalf("Erro ao gerar token: %v", err)
	}
	fmt.Println(token)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	repo "visitor-admission/internal/adapter/repository/mysql"
	"visitor-admission/internal/config"
	"visitor-admission/internal/infrastructure/db"
	"visitor-admission/internal/infrastructure/logger"
	"visitor-admission/internal/infrastructure/token"
	ucAuth "visitor-admission/internal/usecase/auth"
)

// seed creates one employee account:
//
//	go run ./cmd/seed -name "Dewi Lestari" -department Finance -email dewi@corp.test -password secret
func main() {
	name := flag.String("name", "", "employee full name")
	department := flag.String("department", "", "employee department")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "plain password (hashed with bcrypt)")
	flag.Parse()

	if *name == "" || *department == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.Fatal("open mysql", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	uc := ucAuth.NewUsecase(repo.NewEmployeeRepository(gdb), token.NewSigner(cfg.JWTSecret, cfg.JWTTTL))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	emp, err := uc.CreateEmployee(ctx, *name, *department, *email, *password)
	if err != nil {
		log.Fatal("create employee", zap.Error(err))
	}
	fmt.Printf("created employee id=%d email=%s\n", emp.ID, emp.Email)
}

// seed_demo genera un script SQL con un hotel de demostración, su administrador y
// habitaciones con códigos de acceso listos para probar el login de huésped.
//
// Uso: go run ./cmd/seed_demo [nombre del hotel] [habitaciones]
// Por defecto "Sea Breeze Inn" con 10 habitaciones (101..110).
// La contraseña del admin se lee de SEED_ADMIN_PASSWORD (por defecto "demo-1234").
// Escribe: internal/infrastructure/postgres/migrations/900_seed_demo.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/hotelops-api/pkg/codes"
	"github.com/jhoicas/hotelops-api/pkg/password"
)

const adminEmail = "admin@demo.hotelops.local"

func main() {
	hotelName := "Sea Breeze Inn"
	if len(os.Args) > 1 && strings.TrimSpace(os.Args[1]) != "" {
		hotelName = strings.TrimSpace(os.Args[1])
	}
	rooms := 10
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n < 1 || n > 500 {
			fmt.Fprintf(os.Stderr, "Número de habitaciones inválido: %q\n", os.Args[2])
			os.Exit(1)
		}
		rooms = n
	}
	plain := os.Getenv("SEED_ADMIN_PASSWORD")
	if plain == "" {
		plain = "demo-1234"
	}
	hash, err := password.Hash(plain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash de contraseña: %v\n", err)
		os.Exit(1)
	}

	hotelID := uuid.NewString()
	adminID := uuid.NewString()
	hotelCode := codes.GenerateHotelCode(hotelName)

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "900_seed_demo.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Datos de demostración (no aplicar en producción)\n")
	fmt.Fprintf(out, "-- Hotel %s, código %s. Admin %s\n\n", escapeSQL(hotelName), hotelCode, adminEmail)

	out.WriteString("BEGIN;\n\n")
	out.WriteString("-- 1. Hotel\n")
	fmt.Fprintf(out, "INSERT INTO hotels (id, name, code) VALUES ('%s', '%s', '%s');\n\n",
		hotelID, escapeSQL(hotelName), hotelCode)

	out.WriteString("-- 2. Administrador (identidad confirmada + perfil)\n")
	fmt.Fprintf(out, "INSERT INTO auth_identities (id, email, password_hash, email_confirmed_at) VALUES ('%s', '%s', '%s', now());\n",
		adminID, adminEmail, escapeSQL(hash))
	fmt.Fprintf(out, "INSERT INTO users (id, email, name, hotel_id, role, can_manage_rooms, can_manage_staff, email_verified)\n")
	fmt.Fprintf(out, "VALUES ('%s', '%s', 'Administrador demo', '%s', 'admin', true, true, true);\n\n", adminID, adminEmail, hotelID)

	// códigos únicos dentro del script; la restricción rooms_code_key cubre el resto
	out.WriteString("-- 3. Habitaciones\n")
	out.WriteString("INSERT INTO rooms (hotel_id, number, code, floor) VALUES\n")
	seen := make(map[string]bool, rooms)
	for i := 0; i < rooms; i++ {
		number := strconv.Itoa(101 + i)
		code := codes.GenerateRoomCode(hotelCode, number)
		for seen[code] {
			code = codes.GenerateRoomCode(hotelCode, number)
		}
		seen[code] = true
		sep := ","
		if i == rooms-1 {
			sep = ";"
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', %d)%s\n", hotelID, number, code, 1+i/100, sep)
	}
	out.WriteString("\nCOMMIT;\n")

	fmt.Printf("Generado %s: hotel %s (%s), %d habitaciones\n", outPath, hotelName, hotelCode, rooms)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

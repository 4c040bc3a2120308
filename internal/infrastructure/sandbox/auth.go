package sandbox

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/pkg/jwt"
)

const localUserID = "user_id"

// requireAuth valida el Bearer token y carga el usuario en Locals.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return fail(c, fiber.StatusUnauthorized, "Token não fornecido")
	}
	userID, err := jwt.Parse(s.cfg.JWTSecret, strings.TrimSpace(parts[1]))
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Token inválido")
	}
	s.mu.Lock()
	_, ok := s.accounts[userID]
	s.mu.Unlock()
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Usuário não encontrado")
	}
	c.Locals(localUserID, userID)
	return c.Next()
}

func userID(c *fiber.Ctx) string {
	s, _ := c.Locals(localUserID).(string)
	return s
}

func (s *Server) register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return fail(c, fiber.StatusBadRequest, validationMessage(err))
	}
	email := strings.ToLower(in.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}

	s.mu.Lock()
	if _, exists := s.byEmail[email]; exists {
		s.mu.Unlock()
		return fail(c, fiber.StatusBadRequest, "Email já cadastrado")
	}
	acc := &account{
		profile:      entity.UserProfile{ID: uuid.NewString(), Name: in.Name, Email: email, Plan: entity.PlanFree},
		passwordHash: string(hash),
	}
	s.accounts[acc.profile.ID] = acc
	s.byEmail[email] = acc.profile.ID
	s.mu.Unlock()

	return s.issue(c, fiber.StatusCreated, acc.profile)
}

func (s *Server) login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo inválido")
	}
	s.mu.Lock()
	acc, ok := s.accounts[s.byEmail[strings.ToLower(in.Email)]]
	var profile entity.UserProfile
	var hash string
	if ok {
		profile, hash = acc.profile, acc.passwordHash
	}
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)) != nil {
		return fail(c, fiber.StatusUnauthorized, "Credenciais inválidas")
	}
	return s.issue(c, fiber.StatusOK, profile)
}

func (s *Server) issue(c *fiber.Ctx, status int, u entity.UserProfile) error {
	token, err := jwt.Generate(s.cfg.JWTSecret, u.ID, u.Email, s.cfg.JWTIssuer, s.cfg.JWTExpiration)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(status).JSON(dto.AuthResponse{Token: token, User: dto.UserFromEntity(u)})
}

func (s *Server) me(c *fiber.Ctx) error {
	s.mu.Lock()
	profile := s.accounts[userID(c)].profile
	s.mu.Unlock()
	return c.JSON(dto.Envelope[dto.UserDTO]{Data: dto.UserFromEntity(profile)})
}

// planOf plan actual del usuario. Requiere s.mu.
func (s *Server) planOf(id string) string {
	if acc, ok := s.accounts[id]; ok {
		return acc.profile.Plan
	}
	return entity.PlanFree
}

// validationMessage extrae el detalle del error de validación para el cuerpo de respuesta.
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
}

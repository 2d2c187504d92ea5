package services

import (
	"errors"
	"fmt"
	"renda-http-service/internal/domain/models"
	"renda-http-service/internal/infrastructure/config"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// 用户角色
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleTenant  = "tenant"
)

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(userID uint, role string) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
	Login(username, password string) (*LoginResult, error)
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token     string      `json:"token"`
	UserID    uint        `json:"user_id"`
	Role      string      `json:"role"`
	Username  string      `json:"username"`
	CreatedAt interface{} `json:"created_at"`
}

// JWTService 提供JWT相关服务
type JWTService struct {
	secretKey string
	issuer    string
	DB        *gorm.DB
}

// JWTClaims 定义JWT令牌的声明结构
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "renda-http-service",
		DB:        db,
	}
}

// GenerateToken 生成JWT令牌
func (s *JWTService) GenerateToken(userID uint, role string) (string, error) {
	// 令牌有效期为24小时
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &JWTClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken 验证JWT令牌
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims 从令牌中提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的令牌声明")
}

// Login 依次尝试管理员、经理、租户三张表完成登录
func (s *JWTService) Login(username, password string) (*LoginResult, error) {
	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err == nil {
		return s.issueToken(admin.ID, RoleAdmin, admin.Username, admin.CreatedAt, password, admin.Password)
	}

	var manager models.Manager
	if err := s.DB.Where("username = ?", username).First(&manager).Error; err == nil {
		return s.issueToken(manager.ID, RoleManager, manager.Username, manager.CreatedAt, password, manager.Password)
	}

	var tenant models.Tenant
	if err := s.DB.Where("username = ?", username).First(&tenant).Error; err == nil {
		return s.issueToken(tenant.ID, RoleTenant, tenant.Username, tenant.CreatedAt, password, tenant.Password)
	}

	return nil, errors.New("用户不存在")
}

// issueToken 校验密码并为指定角色签发令牌
func (s *JWTService) issueToken(userID uint, role, username string, createdAt interface{}, password, hash string) (*LoginResult, error) {
	if !models.CheckPasswordHash(password, hash) {
		return nil, errors.New("用户密码错误")
	}

	token, err := s.GenerateToken(userID, role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		UserID:    userID,
		Role:      role,
		Username:  username,
		CreatedAt: createdAt,
	}, nil
}

package logic

import (
	"errors"
	"time"

	"github.com/Moorthy04/Chat-bot/config"
	"github.com/Moorthy04/Chat-bot/dao"
	"github.com/Moorthy04/Chat-bot/models"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserLogic handles user-related business logic
type UserLogic struct {
	userDAO *dao.UserDAO
}

func NewUserLogic(userDAO *dao.UserDAO) *UserLogic {
	return &UserLogic{userDAO: userDAO}
}

// Register creates a new user with a bcrypt-hashed password
func (l *UserLogic) Register(username, password string) (*models.User, error) {
	if _, err := l.userDAO.GetUserByUsername(username); err == nil {
		return nil, errors.New("username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return l.userDAO.CreateUser(username, string(hash))
}

// Login verifies credentials and issues a signed JWT
func (l *UserLogic) Login(username, password string) (*models.User, string, time.Time, error) {
	user, err := l.userDAO.GetUserByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}

	token, expireAt, err := l.generateJWT(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expireAt, nil
}

func (l *UserLogic) generateJWT(userID uint64) (string, time.Time, error) {
	expireAt := time.Now().Add(time.Duration(config.GlobalConfig.Auth.ExpHour) * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     expireAt.Unix(),
	})
	tokenString, err := token.SignedString([]byte(config.GlobalConfig.Auth.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expireAt, nil
}

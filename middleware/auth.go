package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cloudly/drive-api/identity"
	"cloudly/drive-api/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewAuthGuard verifies the bearer credential, resolves it to a local user
// record and attaches that record to the request context. Users are
// provisioned lazily: the first request from an unknown identity pulls the
// profile from the identity provider and inserts it
func NewAuthGuard(d *gorm.DB, idp *identity.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.Request.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Unauthorized",
				"requestID": requestID,
			})
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}

			return []byte(viper.GetString("auth.jwt_secret")), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Unauthorized",
				"requestID": requestID,
			})
			return
		}

		userID, err := token.Claims.GetSubject()
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Unauthorized",
				"requestID": requestID,
			})
			return
		}

		var user model.User

		err = d.Where("id = ?", userID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user, err = provision(c, d, idp, userID)
			if err != nil {
				if errors.Is(err, identity.ErrRateLimited) {
					c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
						"message":   "Too many requests. Please try again.",
						"requestID": requestID,
					})
					return
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message":   "Failed to authenticate user",
					"requestID": requestID,
				})

				zap.L().Error("Failed to provision user", zap.String("userID", userID), zap.Error(err))
				return
			}
		} else if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message":   "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err))
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", &user)
		c.Next()
	}
}

// provision creates the local user record for a first-seen identity. The
// insert ignores conflicts and re-reads, so two concurrent first requests
// both come out with the same row instead of one of them failing
func provision(c *gin.Context, d *gorm.DB, idp *identity.Client, userID string) (model.User, error) {
	profile, err := idp.FetchUser(c.Request.Context(), userID)
	if err != nil {
		return model.User{}, err
	}

	username := profile.Username
	if username == "" {
		username = fmt.Sprintf("user_%d", time.Now().UnixMilli())
	}

	firstName := profile.FirstName
	if firstName == "" {
		firstName = "User"
	}

	user := model.User{
		ID:           userID,
		Email:        profile.Email,
		FirstName:    firstName,
		LastName:     profile.LastName,
		Username:     username,
		AvatarURL:    profile.AvatarURL,
		StorageLimit: model.DefaultStorageLimit,
	}

	err = d.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user, %w", err)
	}

	err = d.Where("id = ?", userID).First(&user).Error
	if err != nil {
		return model.User{}, fmt.Errorf("failed to load provisioned user, %w", err)
	}

	zap.L().Info("Provisioned new user", zap.String("userID", userID), zap.String("username", user.Username))
	return user, nil
}

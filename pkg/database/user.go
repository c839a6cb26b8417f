// pkg/database/user.go
package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"settrack/pkg/model"
)

type UserDB struct {
	db *gorm.DB
}

func (d *DB) User() *UserDB {
	return &UserDB{db: d.db}
}

// GetByEmail 按邮箱查询用户
func (u *UserDB) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := u.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("用户不存在: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// FindOrCreateByEmail 按邮箱查询用户，不存在则创建
func (u *UserDB) FindOrCreateByEmail(email string) (*model.User, error) {
	var user model.User
	err := u.db.Where("email = ?", email).
		FirstOrCreate(&user, model.User{Email: email}).Error
	if err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	return &user, nil
}

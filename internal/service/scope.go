package service

import "github.com/primetrade/task-api/internal/model"

// Scope описывает, какие задачи доступны вызывающему: только свои или
// все подряд. Роль превращается в scope в одном месте, чтобы проверка
// "владелец или админ" не расползалась по условиям.
type Scope int

const (
	ScopeOwn Scope = iota
	ScopeAll
)

func ScopeFor(role model.Role) Scope {
	if role == model.RoleAdmin {
		return ScopeAll
	}
	return ScopeOwn
}

// Allows отвечает, разрешен ли доступ к задаче с данным владельцем.
func (s Scope) Allows(ownerID, callerID string) bool {
	return s == ScopeAll || ownerID == callerID
}

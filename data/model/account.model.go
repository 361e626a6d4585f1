package model

import "strings"

type Account struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (a Account) Name() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// AccountFilter narrows down a directory listing. A zero Take means no limit.
type AccountFilter struct {
	Query string
	Skip  int
	Take  int
}

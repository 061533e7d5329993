package handler

type ContextKey string

var (
	RoleCtxKey ContextKey = "role"
	SubCtxKey  ContextKey = "sub"
	OrgCtxKey  ContextKey = "org"
	MyInfoCtx  ContextKey = "myInfo"
)

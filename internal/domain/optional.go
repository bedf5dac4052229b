package domain

import "encoding/json"

// Optional 区分字段缺失 / 存在但类型不符 / 存在且有效
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Valid: true, Value: v} }

// UnmarshalJSON 只有字段出现时才会被调用；类型不符时不返回错误，只标记 Valid=false
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		o.Valid = false
		return nil
	}
	if string(b) == "null" {
		o.Valid = false
		return nil
	}
	o.Valid = true
	o.Value = v
	return nil
}

func (o Optional[T]) Get() (T, bool) { return o.Value, o.Set && o.Valid }

// UpdateSelfInput PUT/PATCH /users/me；其它字段一律忽略
type UpdateSelfInput struct {
	Name     Optional[string] `json:"name"`
	Password Optional[string] `json:"password"`
}

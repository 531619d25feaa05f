package shop

// Profile 用户资料
type Profile struct {
	UserID        ID          `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Gender        string      `json:"gender,omitempty"`
	PreferredSize string      `json:"preferred_size,omitempty"`
	Preferences   string      `json:"preferences,omitempty"`
	Addresses     AddressBook `json:"address"`
}

// Clone 深拷贝，地址簿不共享底层切片
func (p Profile) Clone() Profile {
	out := p
	out.Addresses = p.Addresses.Clone()
	return out
}

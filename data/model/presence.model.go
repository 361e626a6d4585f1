package model

// PresenceKind tags the state carried by a Presence.
type PresenceKind uint8

const (
	// PresenceKindUndefined marks a period where the presence could not be measured.
	PresenceKindUndefined PresenceKind = iota
	PresenceKindOffline
	PresenceKindOnline
)

func (k PresenceKind) String() string {
	switch k {
	case PresenceKindOffline:
		return "OFFLINE"
	case PresenceKindOnline:
		return "ONLINE"
	default:
		return "UNDEFINED"
	}
}

// Presence is one of Online(platform), Offline or Undefined.
// Only Online carries a platform; the other kinds always report PlatformNone.
type Presence struct {
	kind     PresenceKind
	platform Platform
}

func Online(p Platform) Presence {
	return Presence{kind: PresenceKindOnline, platform: p}
}

func Offline() Presence {
	return Presence{kind: PresenceKindOffline}
}

func Undefined() Presence {
	return Presence{}
}

func (p Presence) Kind() PresenceKind {
	return p.kind
}

func (p Presence) Platform() Platform {
	return p.platform
}

func (p Presence) IsOnline() bool {
	return p.kind == PresenceKindOnline
}

func (p Presence) IsOffline() bool {
	return p.kind == PresenceKindOffline
}

func (p Presence) IsUndefined() bool {
	return p.kind == PresenceKindUndefined
}

// Defined reports whether the presence was actually observed.
func (p Presence) Defined() bool {
	return p.kind != PresenceKindUndefined
}

func (p Presence) Equal(other Presence) bool {
	return p.kind == other.kind && p.platform == other.platform
}

func (p Presence) String() string {
	if p.IsOnline() {
		return p.kind.String() + "(" + p.platform.String() + ")"
	}

	return p.kind.String()
}

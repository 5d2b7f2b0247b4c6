package power

// Config for power management
type Config struct {
	// Show options
	ShowLock      bool `mapstructure:"show_lock"`
	ShowLogout    bool `mapstructure:"show_logout"`
	ShowSuspend   bool `mapstructure:"show_suspend"`
	ShowHibernate bool `mapstructure:"show_hibernate"`
	ShowReboot    bool `mapstructure:"show_reboot"`
	ShowShutdown  bool `mapstructure:"show_shutdown"`

	// Confirm options
	ConfirmLock      bool `mapstructure:"confirm_lock"`
	ConfirmLogout    bool `mapstructure:"confirm_logout"`
	ConfirmSuspend   bool `mapstructure:"confirm_suspend"`
	ConfirmHibernate bool `mapstructure:"confirm_hibernate"`
	ConfirmReboot    bool `mapstructure:"confirm_reboot"`
	ConfirmShutdown  bool `mapstructure:"confirm_shutdown"`

	// Custom commands
	LockCommand      string `mapstructure:"lock_command"`
	LogoutCommand    string `mapstructure:"logout_command"`
	SuspendCommand   string `mapstructure:"suspend_command"`
	HibernateCommand string `mapstructure:"hibernate_command"`
	RebootCommand    string `mapstructure:"reboot_command"`
	ShutdownCommand  string `mapstructure:"shutdown_command"`
}

// DefaultConfig returns default power configuration
func DefaultConfig() Config {
	return Config{
		ShowLock:      true,
		ShowLogout:    true,
		ShowSuspend:   true,
		ShowHibernate: false,
		ShowReboot:    true,
		ShowShutdown:  true,

		ConfirmLogout:   true,
		ConfirmReboot:   true,
		ConfirmShutdown: true,

		LockCommand:      "loginctl lock-session",
		LogoutCommand:    "loginctl terminate-user $USER",
		SuspendCommand:   "systemctl suspend",
		HibernateCommand: "systemctl hibernate",
		RebootCommand:    "systemctl reboot",
		ShutdownCommand:  "systemctl poweroff",
	}
}

type option struct {
	key     string
	label   string
	show    bool
	confirm bool
	command string
}

func (c Config) options() []option {
	return []option{
		{"lock", "Lock", c.ShowLock, c.ConfirmLock, c.LockCommand},
		{"logout", "Logout", c.ShowLogout, c.ConfirmLogout, c.LogoutCommand},
		{"suspend", "Suspend", c.ShowSuspend, c.ConfirmSuspend, c.SuspendCommand},
		{"hibernate", "Hibernate", c.ShowHibernate, c.ConfirmHibernate, c.HibernateCommand},
		{"reboot", "Reboot", c.ShowReboot, c.ConfirmReboot, c.RebootCommand},
		{"shutdown", "Shutdown", c.ShowShutdown, c.ConfirmShutdown, c.ShutdownCommand},
	}
}

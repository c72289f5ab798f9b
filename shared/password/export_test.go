package password

// lower the work factor so the suite stays fast
func init() {
	cost = 4
}

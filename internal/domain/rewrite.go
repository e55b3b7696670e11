package domain

// RewriteRule is a DNS rewrite record as AdGuard Home stores it: a domain
// name answered with a fixed address. The appliance owns these records; the
// domain name is the identity and the answer is the mutable part.
type RewriteRule struct {
	Domain string `json:"domain"`
	Answer string `json:"answer"`
}

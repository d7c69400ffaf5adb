package game

import "math/rand"

// Word pools, cyber-themed like the product's lists. Split by length:
// short 1-4 chars, medium 5-8, long 9+.

var ShortWords = []string{
	"key", "bot", "net", "vpn", "cmd", "api", "mac", "ram", "ssl", "dns",
	"usb", "sql", "ssh", "hex", "tcp", "udp", "ip", "os", "gui", "cli",
	"bug", "app", "hub", "log", "web", "www", "lan", "wan", "dos", "xor",
	"aes", "rsa", "md5", "sha", "tls", "otp", "pin", "sim", "zip", "bin",
	"sys", "dev", "bit", "git", "port", "root", "host", "node", "code",
	"data", "hash", "salt", "cert", "ping", "scan", "wifi", "byte", "disk",
}

var MediumWords = []string{
	"matrix", "cyber", "secure", "attack", "threat", "malware", "phishing",
	"firewall", "exploit", "payload", "session", "sandbox", "monitor",
	"scanner", "network", "gateway", "router", "console", "command",
	"process", "virtual", "browser", "cookie", "control", "access",
	"account", "encrypt", "decrypt", "hashing", "spoof", "packet",
	"kernel", "daemon", "socket", "binary", "cipher", "backdoor", "botnet",
	"protocol", "terminal", "keylogger", "rootkit", "honeypot",
}

var LongWords = []string{
	"authentication", "authorization", "cryptography", "vulnerability",
	"configuration", "penetration", "administrator", "implementation",
	"confidentiality", "availability", "integrity", "cryptanalysis",
	"decryption", "encryption", "firewalling", "virtualization",
	"infrastructure", "cybersecurity", "multifactor", "surveillance",
	"countermeasure", "reconnaissance", "privilege", "exploitation",
	"obfuscation", "segmentation", "certificate",
}

// allWords returns the union of the three pools.
func allWords() []string {
	out := make([]string, 0, len(ShortWords)+len(MediumWords)+len(LongWords))
	out = append(out, ShortWords...)
	out = append(out, MediumWords...)
	out = append(out, LongWords...)
	return out
}

// SampleWords draws n words from the shuffled union of all pools. When n
// exceeds the pool size the sample wraps around, so callers always get
// exactly n words.
func SampleWords(rng *rand.Rand, n int) []string {
	pool := allWords()
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = pool[i%len(pool)]
	}
	return out
}

// Reverse returns the word with its characters in reverse order. The typing
// target is always the reversed form of the displayed word.
func Reverse(word string) string {
	runes := []rune(word)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

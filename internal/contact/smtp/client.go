// Package smtp implements the minimal client side of the mail submission
// protocol: plain authenticated delivery of one message over implicit TLS.
// No pipelining, no extensions beyond AUTH LOGIN.
package smtp

import (
	"bufio"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	replyTimeout = 15 * time.Second
	crlf         = "\r\n"
)

// Reply classes the exchange distinguishes. 2xx completes a command,
// 3xx asks for more input (AUTH prompts, DATA go-ahead).
const (
	classCompleted = 2
	classContinue  = 3
)

// Message is one plaintext mail to be relayed.
type Message struct {
	FromName  string
	FromEmail string
	Subject   string
	Body      string
}

// Client delivers messages through a configured relay. One Send call is
// one connection; nothing is queued or retried.
type Client struct {
	Host      string
	Port      int
	User      string
	Password  string
	Recipient string

	timeout time.Duration
	dial    func() (net.Conn, error)
}

func New(host string, port int, user, password, recipient string) *Client {
	c := &Client{
		Host:      host,
		Port:      port,
		User:      user,
		Password:  password,
		Recipient: recipient,
		timeout:   replyTimeout,
	}
	c.dial = c.dialTLS
	return c
}

func (c *Client) dialTLS() (net.Conn, error) {
	addr := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	return tls.Dial("tcp", addr, &tls.Config{ServerName: c.Host})
}

// stage enumerates the exchange. Each stage sends at most one command
// and blocks for one classified reply; any failure aborts the remaining
// stages.
type stage int

const (
	stageGreeting stage = iota // relay speaks first
	stageHello
	stageAuth
	stageAuthUser
	stageAuthPass
	stageMailFrom
	stageRcptTo
	stageData
	stageBody
	stageQuit
	stageDone
)

var stageNames = map[stage]string{
	stageGreeting: "greeting",
	stageHello:    "EHLO",
	stageAuth:     "AUTH LOGIN",
	stageAuthUser: "AUTH username",
	stageAuthPass: "AUTH password",
	stageMailFrom: "MAIL FROM",
	stageRcptTo:   "RCPT TO",
	stageData:     "DATA",
	stageBody:     "message body",
	stageQuit:     "QUIT",
}

func (st stage) String() string {
	if name, ok := stageNames[st]; ok {
		return name
	}
	return "unknown"
}

// Send delivers one message, conducting the full scripted exchange. The
// connection is closed on every exit path. QUIT is best-effort: once the
// body was accepted, a failing QUIT does not fail the delivery.
func (c *Client) Send(msg Message) error {
	conn, err := c.dial()
	if err != nil {
		return fmt.Errorf("connect to relay: %w", err)
	}
	defer conn.Close()

	t := &transcript{conn: conn, r: bufio.NewReader(conn), timeout: c.timeout}

	for st := stageGreeting; st != stageDone; {
		next, err := c.step(t, st, msg)
		if err != nil {
			if st == stageQuit {
				return nil
			}
			return fmt.Errorf("%s: %w", st, err)
		}
		st = next
	}
	return nil
}

func (c *Client) step(t *transcript, st stage, msg Message) (stage, error) {
	switch st {
	case stageGreeting:
		return stageHello, t.expect(classCompleted)
	case stageHello:
		return stageAuth, t.exchange("EHLO "+c.Host, classCompleted)
	case stageAuth:
		return stageAuthUser, t.exchange("AUTH LOGIN", classContinue)
	case stageAuthUser:
		return stageAuthPass, t.exchange(b64(c.User), classContinue)
	case stageAuthPass:
		return stageMailFrom, t.exchange(b64(c.Password), classCompleted)
	case stageMailFrom:
		return stageRcptTo, t.exchange("MAIL FROM:<"+c.envelopeFrom(msg)+">", classCompleted)
	case stageRcptTo:
		return stageData, t.exchange("RCPT TO:<"+c.Recipient+">", classCompleted)
	case stageData:
		return stageBody, t.exchange("DATA", classContinue)
	case stageBody:
		if err := t.send(c.encode(msg)); err != nil {
			return 0, err
		}
		return stageQuit, t.expect(classCompleted)
	case stageQuit:
		return stageDone, t.exchange("QUIT", classCompleted)
	}
	return 0, fmt.Errorf("invalid stage %d", st)
}

// envelopeFrom picks the MAIL FROM address: the relay account when it is
// a full address, otherwise the visitor's own address.
func (c *Client) envelopeFrom(msg Message) string {
	if strings.Contains(c.User, "@") {
		return c.User
	}
	return msg.FromEmail
}

// encode builds the DATA payload: headers, blank separator line, the
// CRLF-normalized dot-stuffed body, and the lone "." terminator.
func (c *Client) encode(msg Message) string {
	body := strings.ReplaceAll(msg.Body, crlf, "\n")
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, ".") {
			lines[i] = "." + line
		}
	}

	fields := []string{
		"Subject: " + msg.Subject,
		`From: "` + msg.FromName + `" <` + msg.FromEmail + `>`,
		"Reply-To: " + msg.FromEmail,
		"To: " + c.Recipient,
		"Content-Type: text/plain; charset=utf-8",
		"Content-Transfer-Encoding: 8bit",
		"",
	}
	fields = append(fields, lines...)
	fields = append(fields, "."+crlf)
	return strings.Join(fields, crlf)
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// transcript drives one command/response exchange at a time.
type transcript struct {
	conn    net.Conn
	r       *bufio.Reader
	timeout time.Duration
}

// exchange sends one command line and waits for a reply of the wanted
// class.
func (t *transcript) exchange(command string, wantClass int) error {
	if err := t.send(command + crlf); err != nil {
		return err
	}
	return t.expect(wantClass)
}

func (t *transcript) send(payload string) error {
	if err := t.conn.SetDeadline(time.Now().Add(t.timeout)); err != nil {
		return err
	}
	_, err := t.conn.Write([]byte(payload))
	return err
}

// expect reads one full reply and checks its class. A reply line is
// "<3-digit code><sep><text>"; sep "-" means more lines follow, sep " "
// closes the reply, and only the closing line's code counts. Replies may
// arrive split across packets; reading line-wise buffers until each
// terminator is seen.
func (t *transcript) expect(wantClass int) error {
	if err := t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
		return err
	}
	for {
		line, err := t.r.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read reply: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if len(line) < 4 {
			return fmt.Errorf("malformed reply line %q", line)
		}
		code, err := strconv.Atoi(line[:3])
		if err != nil {
			return fmt.Errorf("malformed reply line %q", line)
		}
		switch line[3] {
		case '-':
			continue
		case ' ':
			if code >= 400 {
				return fmt.Errorf("relay refused: %s", line)
			}
			if code/100 != wantClass {
				return fmt.Errorf("unexpected reply %q (want %dxx)", line, wantClass)
			}
			return nil
		default:
			return fmt.Errorf("malformed reply line %q", line)
		}
	}
}

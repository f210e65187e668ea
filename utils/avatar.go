package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"quizroom/config"
	"quizroom/models"

	"github.com/go-resty/resty/v2"
)

// ResolveAvatar probes Gravatar for a picture registered to the email.
// Returns the Gravatar URL when one exists, DefaultAvatar otherwise.
// Called off the request path; signup does not wait for it. When the
// probe is disabled no request leaves the process, same as the email
// sender without an API key.
func ResolveAvatar(email string) string {
	if !config.AppConfig.GravatarEnabled {
		return models.DefaultAvatar
	}

	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	url := fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=404", hex.EncodeToString(sum[:]))

	client := resty.New().SetTimeout(5 * time.Second)
	resp, err := client.R().Head(url)
	if err != nil || resp.StatusCode() != 200 {
		return models.DefaultAvatar
	}
	return url
}

package service

import "fmt"

func welcomeEmailTemplate(name, appURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Start saving videos, posts, docs and notes in one place:
%s

When you want to show your collection to someone, turn on sharing and send them the link.
You can revoke it at any time.

Best,
The %s Team`, name, appURL, appName)

	return subject, body
}

func shareEnabledEmailTemplate(name, shareURL, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s collection is now public", appName)
	body := fmt.Sprintf(`Hi %s,

Anyone with this link can now view your collection (read-only):
%s

If you didn't do this, turn sharing off in the app. The link stops working immediately.

Best,
The %s Team`, name, shareURL, appName)

	return subject, body
}

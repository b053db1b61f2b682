package kvstore

const keyNamespace = "gt"

// CartKey is where the live cart snapshot lives.
func CartKey() string {
	return keyNamespace + ":cart"
}

// CheckoutCartKey holds the independently-keyed copy of the cart written when
// checkout is initiated. Mutating the live cart afterwards must not affect an
// in-progress checkout, so the two keys never alias.
func CheckoutCartKey() string {
	return keyNamespace + ":checkout_cart"
}

// AccountsKey holds the full registered-accounts list snapshot.
func AccountsKey() string {
	return keyNamespace + ":accounts"
}

// SessionKey stores the session record for an issued access token.
func SessionKey(tokenID string) string {
	return keyNamespace + ":session:" + tokenID
}

// LastLoginKey records the most recent login time for an account.
func LastLoginKey(accountID string) string {
	return keyNamespace + ":last_login:" + accountID
}

// ActivityKey holds the bounded activity log for an account.
func ActivityKey(accountID string) string {
	return keyNamespace + ":activity:" + accountID
}

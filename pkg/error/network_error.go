package error

import "net/http"

// NetworkError covers transport failures and non-success responses from the
// remote scheduling backend or an AI provider. It is always distinct from the
// no-credential case, which never reaches the network.
type NetworkError string

func (err NetworkError) Error() string {
	return string(err)
}

func (err NetworkError) ErrCode() string {
	return "NETWORK_ERROR"
}

func (err NetworkError) StatusCode() int {
	return http.StatusBadGateway
}

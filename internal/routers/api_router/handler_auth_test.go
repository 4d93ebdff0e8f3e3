package api_router

import "testing"

// 联合登录成功后跳转回前端，Token 作为查询参数携带
func TestFederatedRedirectURL(t *testing.T) {
	tests := []struct {
		frontendURL string
		token       string
		want        string
	}{
		{
			frontendURL: "http://localhost:3000",
			token:       "abc123",
			want:        "http://localhost:3000/oauth2/redirect?token=abc123",
		},
		{
			// 尾部斜杠不产生双斜杠
			frontendURL: "https://lab.example.com/",
			token:       "abc123",
			want:        "https://lab.example.com/oauth2/redirect?token=abc123",
		},
		{
			// Token 中的特殊字符转义
			frontendURL: "http://localhost:3000",
			token:       "a+b/c=",
			want:        "http://localhost:3000/oauth2/redirect?token=a%2Bb%2Fc%3D",
		},
	}

	for _, tt := range tests {
		if got := federatedRedirectURL(tt.frontendURL, tt.token); got != tt.want {
			t.Errorf("federatedRedirectURL(%q, %q) = %q, want %q", tt.frontendURL, tt.token, got, tt.want)
		}
	}
}

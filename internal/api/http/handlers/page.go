package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weisyn/nftmint/pkg/types"
)

// PageTemplateName 页面模板名
const PageTemplateName = "index"

// PageTemplate 单页界面：标题、铸造按钮、画廊和通知区域
// 初始内容由服务端渲染，之后通过 JSON 接口和 websocket 更新
var PageTemplate = template.Must(template.New(PageTemplateName).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0 auto; max-width: 960px; }
h1 { text-align: center; margin: 2.5rem 0; color: #1e40af; }
.actions { display: flex; justify-content: center; }
button { background: #1d4ed8; color: #fff; border: 0; border-radius: .5rem; padding: .6rem 1.2rem; }
button:disabled { opacity: .6; }
.gallery { margin-top: 2.5rem; display: grid; grid-template-columns: repeat(4, 1fr); gap: 1rem; }
.gallery img { width: 100%; }
#notifications div { margin: .5rem 0; padding: .5rem; border-radius: .25rem; }
.success { background: #dcfce7; }
.error { background: #fee2e2; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="actions">
  <button id="mint" type="button"{{if .Loading}} disabled{{end}}>{{if .Loading}}Loading... {{end}}Mint NFT</button>
</div>
<div id="notifications"></div>
<div id="gallery" class="gallery">
{{range .Gallery}}  <img src="{{.Image}}" alt="token image" title="{{.Name}}">
{{end}}</div>
<script>
const mintButton = document.getElementById('mint');
const notifications = document.getElementById('notifications');

function setLoading(loading) {
  mintButton.disabled = loading;
  mintButton.textContent = loading ? 'Loading... Mint NFT' : 'Mint NFT';
}

function banner(text, cls, link) {
  const div = document.createElement('div');
  div.className = cls;
  if (link && link.startsWith('http')) {
    const a = document.createElement('a');
    a.href = link; a.target = '_blank'; a.textContent = text;
    div.appendChild(a);
  } else {
    div.textContent = text;
  }
  notifications.appendChild(div);
  setTimeout(() => div.remove(), 8000);
}

mintButton.addEventListener('click', async () => {
  setLoading(true);
  try {
    const res = await fetch('/api/mint', { method: 'POST' });
    if (!res.ok) {
      const body = await res.json();
      console.error(body.error);
      if (body.error && body.error.kind !== 'wallet_absent') {
        banner(body.error.message, 'error');
      }
    }
  } finally {
    const status = await fetch('/api/status').then((r) => r.json());
    setLoading(status.data.loading);
  }
});

const scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
const ws = new WebSocket(scheme + location.host + '/ws/notifications');
ws.onmessage = (event) => {
  const n = JSON.parse(event.data);
  if (n.level === 'alert') {
    alert(n.message);
  } else {
    banner(n.message, 'success', n.link);
  }
};
</script>
</body>
</html>
`))

// pageData 页面渲染数据
type pageData struct {
	Title   string
	Loading bool
	Account string
	Gallery []types.TokenMetadata
}

// PageTitle 页面标题
const PageTitle = "Welcome here to mint Token!"

// Index 渲染单页界面
func (h *GalleryHandlers) Index(c *gin.Context) {
	c.HTML(http.StatusOK, PageTemplateName, pageData{
		Title:   PageTitle,
		Loading: h.controller.Loading(),
		Account: h.controller.Account().String(),
		Gallery: h.controller.Gallery(),
	})
}

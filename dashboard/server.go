package dashboard

import (
	"context"
	"html/template"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{}

// Server serves a single dashboard page to a single client over a single
// websocket. This is a development aid for watching one checker run, not
// a multi-tenant web service.
type Server struct {
	addr     string
	router   *mux.Router
	progress <-chan Progress
	ctx      context.Context
}

// New builds a dashboard bound to addr that relays progress to whichever
// single browser connects to it.
func New(ctx context.Context, addr string, progress <-chan Progress) (*Server, error) {
	s := &Server{
		addr:     addr,
		router:   mux.NewRouter(),
		progress: progress,
		ctx:      ctx,
	}
	s.router.HandleFunc("/", s.serveIndex)
	s.router.HandleFunc("/ws", s.serveWebsocket)
	return s, nil
}

// Serve blocks, serving the dashboard until ctx is cancelled or the HTTP
// server errors.
func (s *Server) Serve() error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	go func() {
		<-s.ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if err := indexTmpl.Execute(w, nil); err != nil {
		log.Printf("dashboard: render index: %v", err)
	}
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	pub := newPublisher(s.progress, ws, r.Context())
	if err := pub.Sync(); err != nil {
		log.Printf("dashboard: client disconnected: %v", err)
	}
}

var indexTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><title>mcctl dashboard</title></head>
<body>
<h1>Model checker progress</h1>
<pre id="progress">connecting...</pre>
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (ev) => {
	document.getElementById("progress").textContent = JSON.stringify(JSON.parse(ev.data), null, 2);
};
</script>
</body>
</html>
`))
